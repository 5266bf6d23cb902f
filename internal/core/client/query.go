package client

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/emcapi/emcapi/internal/core"
)

// Classify reports whether id is a UUID or a name.
func Classify(id string) core.Kind {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err == nil {
		return core.KindUUID
	}
	return core.KindName
}

// CleanIDs trims identifiers and drops empty ones, keeping order.
func CleanIDs(ids []string) []string {
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if value := strings.TrimSpace(id); value != "" {
			cleaned = append(cleaned, value)
		}
	}
	return cleaned
}

// Round rounds half up, matching the API's integer coordinates:
// 12.6 -> 13, -3.4 -> -3, -3.5 -> -3.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// maxBlock bounds coordinates and radii to the int32 range used by block positions.
const maxBlock = math.MaxInt32

// blockValue rounds v to a block coordinate. It fails for NaN, infinities
// and values outside the int32 range.
func blockValue(v float64) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	rounded := math.Floor(v + 0.5)
	if rounded > maxBlock || rounded < -maxBlock {
		return 0, false
	}
	return Round(v), true
}

// blockPoint rounds both axes of p.
func blockPoint(p core.Point) (x, z int, err error) {
	x, okX := blockValue(p[0])
	z, okZ := blockValue(p[1])
	if !okX || !okZ {
		return 0, 0, fmt.Errorf("%w: [%v, %v]", ErrInvalidCoordinate, p[0], p[1])
	}
	return x, z, nil
}

// blockRadius rounds a search radius. NaN fails the >= comparison.
func blockRadius(radius float64) (int, error) {
	if !(radius >= 0) {
		return 0, ErrInvalidRadius
	}
	r, ok := blockValue(radius)
	if !ok {
		return 0, ErrInvalidRadius
	}
	return r, nil
}

func queryParams(ids []string) url.Values {
	params := url.Values{}
	params.Set("query", strings.Join(ids, ","))
	return params
}

func countKinds(ids []string) (uuids, names int) {
	for _, id := range ids {
		if Classify(id) == core.KindUUID {
			uuids++
		} else {
			names++
		}
	}
	return uuids, names
}

// formatPoint encodes an [x, z] coordinate as "x;z".
func formatPoint(p core.Point) (string, error) {
	x, z, err := blockPoint(p)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(x) + ";" + strconv.Itoa(z), nil
}
