// Package domain holds the provider-agnostic types shared by the extraction
// pipeline: providers, source documents and canonical records.
package domain

import "fmt"

// Provider identifies a certificate-issuing platform with its own layout.
type Provider string

const (
	Udemy            Provider = "udemy"
	Cybrary          Provider = "cybrary"
	DeepLearningAI   Provider = "deeplearningai"
	LinkedInLearning Provider = "linkedinlearning"
)

// Providers lists every supported provider in a stable order.
var Providers = []Provider{Udemy, Cybrary, DeepLearningAI, LinkedInLearning}

// ParseProvider maps an identifier onto the closed provider enumeration.
func ParseProvider(id string) (Provider, error) {
	for _, p := range Providers {
		if string(p) == id {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, id)
}

func (p Provider) String() string { return string(p) }
