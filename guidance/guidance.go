// Package guidance produces the do/don't safety instructions shown with a
// verified sighting, keyed by where the colony was found and who found it.
package guidance

import (
	"hivewatch/models"
)

type Guidelines struct {
	Dos      []string `json:"dos"`
	Donts    []string `json:"donts"`
	Advisory string   `json:"advisory,omitempty"`
}

// conservationZone is the sensitive rock-bee habitat band; sightings inside
// it override everything else.
func conservationZone(lat, long float64) bool {
	return lat >= 10.0 && lat <= 15.0 && long >= 75.0 && long <= 80.0
}

// For builds guidelines for a sighting. Location rules come first, then
// role-specific additions.
func For(locationType, userRole string, lat, long float64) Guidelines {
	if conservationZone(lat, long) && userRole != models.RoleFarmer {
		return Guidelines{
			Dos: []string{
				"Strictly maintain distance (min 20 meters)",
				"Report immediately to Forest Department",
				"Keep area quiet",
			},
			Donts: []string{
				"NO photography with flash",
				"NO presence of humans for long durations",
				"Absolutely NO chemical usage",
			},
			Advisory: "You are in a SENSITIVE Rock Bee Conservation Zone. Extreme care is required.",
		}
	}

	var g Guidelines
	switch locationType {
	case models.LocationBuildings:
		g.Dos = append(g.Dos,
			"Keep a safe distance of at least 10 meters",
			"Alert building residents immediately",
			"Contact professional bee removal services",
		)
		g.Donts = append(g.Donts,
			"Do not attempt to remove the hive yourself",
			"Do not use water or fire to disperse bees",
		)
	case models.LocationFarm:
		g.Dos = append(g.Dos,
			"Protect nearby crops and livestock",
			"Consider beekeeping opportunities",
		)
		g.Donts = append(g.Donts,
			"Do not use pesticides near the hive",
			"Do not disturb during peak activity hours",
		)
		g.Advisory = "Rock bees are essential for crop pollination. Avoid pesticide use in this area for the next few days."
	case models.LocationCliffTree, models.LocationBridges:
		g.Dos = append(g.Dos,
			"Mark the area with warning signs",
			"Contact specialized high-altitude bee removal teams",
		)
		g.Donts = append(g.Donts,
			"NEVER attempt removal without proper equipment",
			"Do not climb or approach the hive",
		)
	default:
		g.Dos = append(g.Dos,
			"Maintain a safe distance",
			"Call emergency services if threatened",
		)
		g.Donts = append(g.Donts,
			"Do not provoke or disturb the bees",
			"Do not make sudden movements",
		)
	}

	switch userRole {
	case models.RoleFarmer:
		g.Dos = append(g.Dos, "Consider sustainable beekeeping practices")
	case models.RoleGeneralPublic:
		g.Dos = append(g.Dos, "Report to local authorities immediately")
	case models.RoleAuthorized:
		g.Dos = append(g.Dos, "Wear full protective gear (bee suit, gloves, veil)")
	case models.RoleStudent:
		g.Dos = append(g.Dos, "Observe only under supervisor guidance")
		g.Donts = append(g.Donts, "Do not approach without instructor permission")
	}

	return g
}
