package utils

import (
	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
)

var Json = jsoniter.ConfigCompatibleWithStandardLibrary

// MustMarshalString marshals v or returns an empty string, logging the failure.
func MustMarshalString(v any) string {
	s, err := Json.MarshalToString(v)
	if err != nil {
		log.Errorf("failed to marshal %+v: %v", v, err)
		return ""
	}
	return s
}

// MarshalIndentString is MustMarshalString with two-space indentation, for
// human-facing output.
func MarshalIndentString(v any) string {
	b, err := Json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Errorf("failed to marshal %+v: %v", v, err)
		return ""
	}
	return string(b)
}
