package naukri

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultHeaders returns the headers the job index accepts from anonymous clients.
func DefaultHeaders() http.Header {
	h := http.Header{}
	h.Set("appid", "109")
	h.Set("systemid", "Naukri")
	h.Set("User-Agent", userAgent)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	return h
}

// LoadHeaders reads a JSON object of headers captured from a browser session.
// HTTP/2 pseudo-headers and Accept-Encoding are dropped so the transport can
// negotiate compression itself.
func LoadHeaders(path string) (http.Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading headers file %q: %w", path, err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing headers file %q: %w", path, err)
	}

	h := http.Header{}
	for key, value := range raw {
		if strings.HasPrefix(key, ":") || strings.EqualFold(key, "accept-encoding") {
			continue
		}
		h.Set(key, value)
	}

	return h, nil
}
