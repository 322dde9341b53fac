package vip

// Offer describes what a tier unlocks in the shop listing.
type Offer struct {
	Tier     int
	Benefits []string
}

var Catalog = []Offer{
	{Tier: Bronze, Benefits: []string{"+20% on every reward", "Bronze badge"}},
	{Tier: Gold, Benefits: []string{"+40% on every reward", "Gold badge", "Priority support"}},
	{Tier: Diamond, Benefits: []string{"+70% on every reward", "Name colour", "Server creation", "Diamond badge"}},
	{Tier: Ultimate, Benefits: []string{"+100% on every reward", "Name colour", "Server creation", "Everything above"}},
}
