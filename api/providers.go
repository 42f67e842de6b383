package api

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

func (s *server) providerInfo(w http.ResponseWriter, r *http.Request) {
	response := providerInfoResponseStruct{
		Results: make([]providerInfoItemStruct, 0, len(s.sources)),
	}

	for _, source := range s.sources {
		item := providerInfoItemStruct{
			Name:                 source.Provider.Identity().String(),
			SupportsTargetLookup: source.Provider.SupportsTargetLookup(),
			Authenticated:        source.Params.APIKey != "",
		}
		response.Results = append(response.Results, item)
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Errorf("Cannot write response: %s", err.Error())
	}
}
