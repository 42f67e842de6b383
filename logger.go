package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/pubaddr/whereabouts/wherelib"
)

type logger struct{}

func (l logger) LookupError(id wherelib.ID, err error) {
	log.WithFields(log.Fields{
		"provider": id.String(),
		"error":    err.Error(),
	}).Warn("Provider lookup failed")
}

func (l logger) CacheInfo(message string) {
	log.WithField("message", message).Debug("Cache event")
}

func (l logger) CacheError(err error) {
	log.WithField("error", err.Error()).Warn("Cache failure")
}
