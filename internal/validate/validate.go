// Package validate checks that strings are syntactically valid URLs.
package validate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yields/urlnorm/internal/parse"
	"golang.org/x/net/idna"
)

// DefaultSchemes are the schemes accepted when
// Options.Schemes is empty.
var DefaultSchemes = []string{"http", "https", "ftp"}

// Options configures a validator.
type Options struct {
	// Schemes lists the accepted schemes, case-insensitive.
	//
	// If empty, DefaultSchemes is used.
	Schemes []string
}

// Validator implements a URL validator.
type Validator struct {
	validate *validator.Validate
	schemes  map[string]struct{}
}

// New returns a new validator.
func New(o Options) (*Validator, error) {
	var v = &Validator{
		validate: validator.New(),
		schemes:  make(map[string]struct{}),
	}

	if len(o.Schemes) == 0 {
		o.Schemes = DefaultSchemes
	}

	for _, s := range o.Schemes {
		v.schemes[strings.ToLower(s)] = struct{}{}
	}

	if err := v.validate.RegisterValidation("url_scheme", v.scheme); err != nil {
		return nil, fmt.Errorf("validate: register url_scheme - %w", err)
	}

	if err := v.validate.RegisterValidation("url_host", v.host); err != nil {
		return nil, fmt.Errorf("validate: register url_host - %w", err)
	}

	return v, nil
}

// Valid returns true if rawurl is a valid URL.
//
// A missing scheme is read as `http://`. The URL must
// parse, use one of the accepted schemes and carry a host
// that is an IP address or a dotted hostname whose ASCII
// form is a valid RFC 1123 hostname.
func (v *Validator) Valid(rawurl string) bool {
	if strings.TrimSpace(rawurl) != rawurl {
		return false
	}

	var s = parse.WithScheme(rawurl)
	return v.validate.Var(s, "required,url,url_scheme,url_host") == nil
}

// Scheme validates the scheme of a URL field.
func (v *Validator) scheme(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}

	_, ok := v.schemes[strings.ToLower(u.Scheme)]
	return ok
}

// Host validates the host of a URL field.
func (v *Validator) host(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}

	var host = u.Hostname()

	if host == "" {
		return false
	}

	if v.validate.Var(host, "ip") == nil {
		return true
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return false
	}

	ascii = strings.TrimSuffix(ascii, ".")

	if !strings.Contains(ascii, ".") {
		return false
	}

	return v.validate.Var(ascii, "hostname_rfc1123") == nil
}
