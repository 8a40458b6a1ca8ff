package scaffold

import (
	"slices"
)

// License describes a license selectable with --license.
type License struct {
	Code string
	Name string
	// SPDX is the SPDX identifier, empty for licenses without one.
	SPDX string
}

// DefaultLicense is used when neither flags nor user config select one.
const DefaultLicense = "none"

var licenses = map[string]License{
	"affero":        {Name: "GNU Affero General Public License v3.0", SPDX: "AGPL-3.0-only"},
	"apache":        {Name: "Apache License 2.0", SPDX: "Apache-2.0"},
	"artistic":      {Name: "Artistic License 2.0", SPDX: "Artistic-2.0"},
	"cc0":           {Name: "Creative Commons Zero v1.0 Universal", SPDX: "CC0-1.0"},
	"eclipse":       {Name: "Eclipse Public License 2.0", SPDX: "EPL-2.0"},
	"gpl2":          {Name: "GNU General Public License v2.0", SPDX: "GPL-2.0-only"},
	"gpl3":          {Name: "GNU General Public License v3.0", SPDX: "GPL-3.0-only"},
	"isc":           {Name: "ISC License", SPDX: "ISC"},
	"lgpl2":         {Name: "GNU Lesser General Public License v2.1", SPDX: "LGPL-2.1-only"},
	"lgpl3":         {Name: "GNU Lesser General Public License v3.0", SPDX: "LGPL-3.0-only"},
	"mit":           {Name: "MIT License", SPDX: "MIT"},
	"mozilla":       {Name: "Mozilla Public License 2.0", SPDX: "MPL-2.0"},
	"new-bsd":       {Name: "BSD 3-Clause \"New\" or \"Revised\" License", SPDX: "BSD-3-Clause"},
	"none":          {Name: "No license (all rights reserved)"},
	"proprietary":   {Name: "Proprietary"},
	"public-domain": {Name: "Public Domain", SPDX: "Unlicense"},
	"simple-bsd":    {Name: "BSD 2-Clause \"Simplified\" License", SPDX: "BSD-2-Clause"},
}

// Licenses returns the known license codes in sorted order.
func Licenses() []string {
	// Equivalent of slices.Sorted(maps.Keys(licenses)); those iterator
	// helpers need Go 1.23 and this module targets Go 1.21.
	codes := make([]string, 0, len(licenses))
	for code := range licenses {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// LookupLicense returns the license for code.
func LookupLicense(code string) (License, bool) {
	l, ok := licenses[code]
	if !ok {
		return License{Code: code}, false
	}
	l.Code = code
	return l, true
}
