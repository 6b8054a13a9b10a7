package content

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrInvalidSnapshot is returned when stored or imported data does not
// describe a usable snapshot.
var ErrInvalidSnapshot = errors.New("content: invalid snapshot")

func encodeConfig(c SiteConfig) ([]byte, error) {
	return json.Marshal(c)
}

func encodeServices(s []Service) ([]byte, error) {
	if s == nil {
		s = []Service{}
	}
	return json.Marshal(s)
}

func decodeConfig(data []byte) (SiteConfig, error) {
	var c *SiteConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return SiteConfig{}, fmt.Errorf("%w: config: %v", ErrInvalidSnapshot, err)
	}
	if c == nil {
		return SiteConfig{}, fmt.Errorf("%w: config is null", ErrInvalidSnapshot)
	}
	return *c, nil
}

func decodeServices(data []byte) ([]Service, error) {
	var s *[]Service
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: services: %v", ErrInvalidSnapshot, err)
	}
	if s == nil {
		return nil, fmt.Errorf("%w: services is null", ErrInvalidSnapshot)
	}
	if err := validateServices(*s); err != nil {
		return nil, err
	}
	return *s, nil
}

// validateServices enforces the catalog id invariant: every id is non-empty
// and unique.
func validateServices(services []Service) error {
	seen := make(map[string]struct{}, len(services))
	for i, s := range services {
		if s.ID == "" {
			return fmt.Errorf("%w: service %d has no id", ErrInvalidSnapshot, i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: duplicate service id %q", ErrInvalidSnapshot, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
