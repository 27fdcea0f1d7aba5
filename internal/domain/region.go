package domain

import (
	"fmt"
	"strings"
)

type Region string

const (
	RegionEU  Region = "EU"
	RegionNA  Region = "NA"
	RegionSA  Region = "SA"
	RegionSEA Region = "SEA"
	RegionOCE Region = "OCE"
)

var Regions = []Region{RegionEU, RegionNA, RegionSA, RegionSEA, RegionOCE}

func ParseRegion(s string) (Region, error) {
	r := Region(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Regions {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown region %q", s)
}

func (r Region) String() string {
	return string(r)
}
