package models

// DemoClients returns a fresh copy of the seeded demo dataset.
func DemoClients() []Client {
	return []Client{
		{
			ID:        "slater-1",
			Name:      "Slater Strategies",
			Address:   "774 SW Sail Ter, Port St. Lucie, FL 34953",
			Industry:  IndustryBusinessServices,
			Latitude:  27.2796,
			Longitude: -80.3920,
		},
		{
			ID:        "white-pines-1",
			Name:      "White Pines Learning",
			Address:   "Port St. Lucie, FL",
			Industry:  IndustryCharter,
			Latitude:  27.2850,
			Longitude: -80.3500,
		},
		{
			ID:        "oakwood-1",
			Name:      "Oakwood Christian Academy",
			Address:   "Port St. Lucie, FL",
			Industry:  IndustryChristianSchool,
			Latitude:  27.2500,
			Longitude: -80.3800,
		},
	}
}
