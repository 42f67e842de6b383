package api

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

func (s *server) selfResolve(w http.ResponseWriter, r *http.Request) {
	flush := r.URL.Query().Get("flush") != ""

	response, err := s.resolveOne(r, nil, flush)
	if err != nil {
		abort(w, http.StatusBadGateway, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Errorf("Cannot write response: %s", err.Error())
	}
}
