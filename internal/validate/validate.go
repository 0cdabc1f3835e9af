// Package validate holds the input predicates shared by the planner forms
// and the API service layer.
package validate

import (
	"net/url"
	"regexp"
)

// emailRE accepts local@label.label[.label...]: a local part without spaces
// or "@", and a domain of at least two non-empty dot-separated labels.
var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@.]+(\.[^\s@.]+)+$`)

// Email reports whether s has the structural shape of an e-mail address.
// It does not check that the domain exists.
func Email(s string) bool {
	return emailRE.MatchString(s)
}

// URL reports whether s is an absolute http or https URL with a host.
func URL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
