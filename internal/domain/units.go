package domain

// Pure metric/imperial conversions for display readouts.
// Total over all real inputs; callers guarantee physically sensible values.

const (
	milesPerKm   = 0.621371
	feetPerMeter = 3.28084
)

func KmToMiles(km float64) float64 { return km * milesPerKm }

func MilesToKm(miles float64) float64 { return miles / milesPerKm }

func MetersToFeet(m float64) float64 { return m * feetPerMeter }

func FeetToMeters(ft float64) float64 { return ft / feetPerMeter }
