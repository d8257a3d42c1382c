package source

import (
	"math"
	"strconv"
	"strings"

	"github.com/LeeJaeHaeng/parking-pass/core/model"
)

// RawFee mirrors the registry's nested fee object.
type RawFee struct {
	Type           string `json:"type"`
	Basic          *int   `json:"basic"`
	BasicTime      *int   `json:"basicTime"`
	Additional     *int   `json:"additional"`
	AdditionalTime *int   `json:"additionalTime"`
	GracePeriod    *int   `json:"gracePeriod"`
	Daily          *int   `json:"daily"`
	Monthly        *int   `json:"monthly"`
}

// RawLot is the wire shape of a registry record. Field naming across the
// upstream feeds is inconsistent (nested fee object vs flat snake-ish
// fields), so both spellings are accepted and reconciled here, at the
// boundary; nothing past Normalize ever sees a raw record.
type RawLot struct {
	ID              any      `json:"id"`
	ExternalID      any      `json:"externalId"`
	Name            string   `json:"name"`
	Address         string   `json:"address"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	TotalSpaces     int      `json:"totalSpaces"`
	AvailableSpaces *int     `json:"availableSpaces"`
	Fee             *RawFee  `json:"fee"`
	FeeType         string   `json:"feeType"`
	BasicFee        *int     `json:"basicFee"`
	BasicTime       *int     `json:"basicTime"`
	AdditionalFee   *int     `json:"additionalFee"`
	AdditionalTime  *int     `json:"additionalTime"`
	OperatingHours  string   `json:"operatingHours"`
	Type            string   `json:"type"`
	ParkingType     string   `json:"parkingType"`
	Facilities      []string `json:"facilities"`
}

// noDataHours is the sentinel used when a record carries no operating hours.
const noDataHours = "no data"

// defaultAvailableShare of capacity is assumed free when a record reports
// no live availability.
const defaultAvailableShare = 0.35

// Normalize maps a raw registry record onto the canonical Lot. Missing
// numeric fields default per the normalization rules; the result is the only
// lot shape the rest of the system operates on.
func Normalize(raw RawLot) model.Lot {
	total := raw.TotalSpaces
	if total < 0 {
		total = 0
	}
	available := int(math.Round(float64(total) * defaultAvailableShare))
	if raw.AvailableSpaces != nil {
		available = *raw.AvailableSpaces
		if available < 0 {
			available = 0
		}
		if total > 0 && available > total {
			available = total
		}
	}

	hours := raw.OperatingHours
	if hours == "" {
		hours = noDataHours
	}

	typ := model.LotPrivate
	if raw.Type == "public" {
		typ = model.LotPublic
	}

	return model.Lot{
		ID:              idString(raw.ID),
		ExternalID:      idString(raw.ExternalID),
		Name:            raw.Name,
		Address:         raw.Address,
		Coordinate:      model.Coordinate{Lat: raw.Latitude, Lon: raw.Longitude},
		TotalSpaces:     total,
		AvailableSpaces: available,
		Fee:             normalizeFee(raw),
		Type:            typ,
		OperatingHours:  hours,
		Facilities:      raw.Facilities,
		Covered:         covered(raw),
	}
}

// NormalizeAll maps a fetched batch, dropping records without an id or name.
func NormalizeAll(raws []RawLot) []model.Lot {
	out := make([]model.Lot, 0, len(raws))
	for _, r := range raws {
		lot := Normalize(r)
		if lot.ID == "" || lot.Name == "" {
			continue
		}
		out = append(out, lot)
	}
	return out
}

func normalizeFee(raw RawLot) model.FeeSchedule {
	f := model.FeeSchedule{
		FeeType:        raw.FeeType,
		BasicFee:       intOr(raw.BasicFee, 0),
		BasicTime:      intOr(raw.BasicTime, 30),
		AdditionalFee:  intOr(raw.AdditionalFee, 0),
		AdditionalTime: intOr(raw.AdditionalTime, 10),
	}
	// The nested fee object takes precedence over the flat fields.
	if n := raw.Fee; n != nil {
		if n.Type != "" {
			f.FeeType = n.Type
		}
		f.BasicFee = intOr(n.Basic, f.BasicFee)
		f.BasicTime = intOr(n.BasicTime, f.BasicTime)
		f.AdditionalFee = intOr(n.Additional, f.AdditionalFee)
		f.AdditionalTime = intOr(n.AdditionalTime, f.AdditionalTime)
		f.GracePeriod = intOr(n.GracePeriod, 0)
		f.DailyCap = intOr(n.Daily, 0)
		f.MonthlyCap = intOr(n.Monthly, 0)
	}
	if f.FeeType == "" {
		if f.BasicFee == 0 && f.AdditionalFee == 0 {
			f.FeeType = "free"
		} else {
			f.FeeType = "metered"
		}
	}
	if f.BasicTime <= 0 {
		f.BasicTime = 30
	}
	if f.AdditionalTime <= 0 {
		f.AdditionalTime = 10
	}
	return f
}

func covered(raw RawLot) bool {
	switch raw.ParkingType {
	case "building", "underground", "attached":
		return true
	}
	for _, f := range raw.Facilities {
		if strings.EqualFold(f, "covered") || strings.EqualFold(f, "indoor") {
			return true
		}
	}
	return false
}

// idString renders the registry's id field, which arrives as either a JSON
// string or a number.
func idString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatInt(int64(t), 10)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
