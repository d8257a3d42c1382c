package source

import (
	"context"

	"github.com/LeeJaeHaeng/parking-pass/core/model"
)

// SeedSource is the last-resort source: a small built-in set of central
// Cheonan lots so the app still renders something with no network and no
// local dataset.
type SeedSource struct{}

// Name implements Source.
func (SeedSource) Name() string { return "seed" }

// Fetch returns the built-in collection.
func (SeedSource) Fetch(_ context.Context) ([]model.Lot, error) {
	metered := func(basic, additional int) model.FeeSchedule {
		return model.FeeSchedule{
			FeeType:        "metered",
			BasicFee:       basic,
			BasicTime:      30,
			AdditionalFee:  additional,
			AdditionalTime: 10,
		}
	}
	free := model.FeeSchedule{FeeType: "free", BasicTime: 30, AdditionalTime: 10}

	return []model.Lot{
		{
			ID: "seed-1", Name: "Buldang Public Parking 1", Address: "Buldang-dong 472",
			Coordinate:  model.Coordinate{Lat: 36.8196, Lon: 127.1089},
			TotalSpaces: 120, AvailableSpaces: 78, Fee: metered(1000, 500),
			Type: model.LotPublic, OperatingHours: "00:00-24:00",
		},
		{
			ID: "seed-2", Name: "Ssangyong Public Parking 1", Address: "Ssangyong-dong 1281",
			Coordinate:  model.Coordinate{Lat: 36.7945, Lon: 127.1212},
			TotalSpaces: 80, AvailableSpaces: 28, Fee: metered(800, 400),
			Type: model.LotPublic, OperatingHours: "06:00-23:00",
		},
		{
			ID: "seed-3", Name: "Sinbu Public Parking 1", Address: "Sinbu-dong 354",
			Coordinate:  model.Coordinate{Lat: 36.8151, Lon: 127.1528},
			TotalSpaces: 150, AvailableSpaces: 52, Fee: metered(1200, 600),
			Type: model.LotPublic, OperatingHours: "00:00-24:00",
		},
		{
			ID: "seed-4", Name: "City Hall Visitor Parking", Address: "Bongmyeong-dong 529",
			Coordinate:  model.Coordinate{Lat: 36.8150, Lon: 127.1130},
			TotalSpaces: 60, AvailableSpaces: 21, Fee: free,
			Type: model.LotPublic, OperatingHours: "09:00-18:00",
		},
		{
			ID: "seed-5", Name: "Terminal Tower Parking", Address: "Buldang-dong 521-2",
			Coordinate:  model.Coordinate{Lat: 36.8201, Lon: 127.1091},
			TotalSpaces: 300, AvailableSpaces: 185, Fee: metered(1500, 700),
			Type: model.LotPrivate, OperatingHours: "00:00-24:00", Covered: true,
		},
		{
			ID: "seed-6", Name: "Dujeong Station Lot", Address: "Dujeong-dong 210",
			Coordinate:  model.Coordinate{Lat: 36.8339, Lon: 127.1390},
			TotalSpaces: 90, AvailableSpaces: 12, Fee: metered(600, 300),
			Type: model.LotPublic, OperatingHours: "05:00-24:00",
		},
	}, nil
}
