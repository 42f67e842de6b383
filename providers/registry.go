package providers

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pubaddr/whereabouts/wherelib"
)

// ErrProviderNotFound is returned for an identifier no backend is
// registered under.
var ErrProviderNotFound = errors.New("provider not found")

var registry = map[string]func() wherelib.Provider{
	NameIPInfo:     func() wherelib.Provider { return ipinfoProvider{} },
	NameIPApiCom:   func() wherelib.Provider { return ipapicomProvider{} },
	NameIPApiCo:    func() wherelib.Provider { return ipapicoProvider{} },
	NameFreeIPApi:  func() wherelib.Provider { return freeipapiProvider{} },
	NameIfConfig:   func() wherelib.Provider { return ifconfigProvider{} },
	NameMyIP:       func() wherelib.Provider { return myipProvider{} },
	NameIPWhoIs:    func() wherelib.Provider { return ipwhoisProvider{} },
	NameIPLocateIo: func() wherelib.Provider { return iplocateioProvider{} },
	NameIPLeak:     func() wherelib.Provider { return ipleakProvider{} },
	NameGetJsonIP:  func() wherelib.Provider { return getjsonipProvider{} },
	NameIPBase:     func() wherelib.Provider { return ipbaseProvider{} },
}

// Build constructs the provider instance for an identifier. The mock
// identifier rebuilds a mock from the payload the ID carries; this is what
// lets cached records round-trip their provider tag.
func Build(id wherelib.ID) (wherelib.Provider, error) {
	if id.IsMock() {
		return NewMock(id.MockIP, id.MockEndpoint), nil
	}

	factory, ok := registry[id.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, id.Name)
	}

	return factory(), nil
}

// Parse converts a compact "<provider> <api_key>" specification into a
// ready-to-use source. The identifier is matched case-insensitively; the
// key token is optional and kept verbatim.
func Parse(s string) (wherelib.Source, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return wherelib.Source{}, fmt.Errorf("%w: empty specification", ErrProviderNotFound)
	}

	name := strings.ToLower(fields[0])

	factory, ok := registry[name]
	if !ok {
		return wherelib.Source{}, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
	}

	rv := wherelib.Source{
		Provider: factory(),
	}

	if len(fields) > 1 {
		rv.Params = wherelib.Parameters{APIKey: fields[1]}
	}

	return rv, nil
}

// ParseAll converts a list of specifications, failing on the first bad one.
func ParseAll(specs []string) ([]wherelib.Source, error) {
	rv := make([]wherelib.Source, 0, len(specs))

	for _, v := range specs {
		source, err := Parse(v)
		if err != nil {
			return nil, err
		}

		rv = append(rv, source)
	}

	return rv, nil
}

// Names lists every registered identifier, sorted.
func Names() []string {
	rv := make([]string, 0, len(registry))

	for name := range registry {
		rv = append(rv, name)
	}

	sort.Strings(rv)

	return rv
}
