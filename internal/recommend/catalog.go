// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package recommend

// vehicle is one catalog entry. Prices are typical used-market asking
// prices, not MSRP.
type vehicle struct {
	Year     int
	Make     string
	Model    string
	Trim     string
	Body     string
	Price    float64
	Features []string
}

// catalog is the built-in vehicle database scored against buyer
// preferences. Entries are grouped roughly by segment and budget.
var catalog = []vehicle{
	// Budget sedans (under $20k)
	{2018, "Honda", "Civic", "LX", "sedan", 15000, []string{"backup camera", "bluetooth", "cruise control"}},
	{2017, "Honda", "Accord", "Sport", "sedan", 17000, []string{"sunroof", "alloy wheels", "bluetooth"}},
	{2019, "Honda", "Civic", "EX", "sedan", 18000, []string{"sunroof", "heated seats", "Apple CarPlay"}},
	{2016, "Honda", "Accord", "EX", "sedan", 14000, []string{"backup camera", "sunroof", "bluetooth"}},
	{2018, "Toyota", "Corolla", "LE", "sedan", 14500, []string{"backup camera", "bluetooth", "lane assist"}},
	{2017, "Toyota", "Camry", "LE", "sedan", 16000, []string{"backup camera", "bluetooth", "power seats"}},
	{2019, "Toyota", "Corolla", "SE", "sedan", 17500, []string{"sunroof", "sport seats", "Apple CarPlay"}},
	{2015, "Honda", "Civic", "EX", "sedan", 12000, []string{"sunroof", "backup camera", "bluetooth"}},
	{2016, "Mazda", "Mazda3", "Touring", "sedan", 13000, []string{"sunroof", "leather seats", "navigation"}},
	{2018, "Hyundai", "Elantra", "SEL", "sedan", 13500, []string{"sunroof", "backup camera", "bluetooth"}},
	{2017, "Nissan", "Sentra", "SR", "sedan", 12500, []string{"sport package", "backup camera", "bluetooth"}},
	{2019, "Kia", "Forte", "LXS", "sedan", 14000, []string{"bluetooth", "backup camera", "warranty"}},

	// Budget coupes (under $20k)
	{2016, "Honda", "Civic", "EX-T", "coupe", 15500, []string{"turbo", "sunroof", "sport wheels"}},
	{2017, "Honda", "Accord", "EX-L", "coupe", 18500, []string{"leather", "sunroof", "V6 engine"}},
	{2015, "Honda", "Civic", "Si", "coupe", 17000, []string{"manual transmission", "sport suspension", "limited slip"}},
	{2018, "Hyundai", "Elantra", "Sport", "coupe", 16000, []string{"turbo", "sport seats", "sunroof"}},

	// Mid-range sedans ($20k-$30k)
	{2020, "Honda", "Accord", "Sport", "sedan", 24000, []string{"sunroof", "leather", "Honda Sensing"}},
	{2021, "Honda", "Civic", "Touring", "sedan", 26000, []string{"leather", "sunroof", "navigation", "heated seats"}},
	{2020, "Toyota", "Camry", "SE", "sedan", 23000, []string{"sport seats", "sunroof", "Apple CarPlay"}},
	{2022, "Honda", "Civic", "Sport", "sedan", 24000, []string{"sunroof", "sport wheels", "Apple CarPlay"}},
	{2022, "Toyota", "Corolla", "SE", "sedan", 23000, []string{"backup camera", "lane assist", "Apple CarPlay"}},
	{2023, "Honda", "Accord", "Sport", "sedan", 28000, []string{"sunroof", "leather", "backup camera"}},
	{2023, "Toyota", "Camry", "XSE", "sedan", 29000, []string{"leather", "sunroof", "adaptive cruise"}},
	{2022, "Mazda", "Mazda3", "Premium", "sedan", 26000, []string{"leather", "sunroof", "Bose audio"}},
	{2023, "Hyundai", "Sonata", "SEL Plus", "sedan", 27000, []string{"sunroof", "wireless charging"}},

	// Budget SUVs (under $20k)
	{2016, "Honda", "CR-V", "EX", "suv", 18000, []string{"AWD", "sunroof", "backup camera"}},
	{2017, "Toyota", "RAV4", "LE", "suv", 17500, []string{"AWD", "backup camera", "bluetooth"}},
	{2015, "Mazda", "CX-5", "Touring", "suv", 16000, []string{"AWD", "sunroof", "backup camera"}},
	{2018, "Subaru", "Forester", "Premium", "suv", 19000, []string{"AWD", "sunroof", "EyeSight"}},

	// Mid-range SUVs ($20k-$40k)
	{2020, "Honda", "CR-V", "EX", "suv", 28000, []string{"AWD", "sunroof", "Honda Sensing"}},
	{2023, "Honda", "CR-V", "EX-L", "suv", 35000, []string{"AWD", "leather", "sunroof", "Honda Sensing"}},
	{2023, "Toyota", "RAV4", "XLE Premium", "suv", 34000, []string{"AWD", "sunroof", "power liftgate"}},
	{2023, "Mazda", "CX-5", "Touring", "suv", 32000, []string{"AWD", "leather", "Bose audio"}},
	{2022, "Subaru", "Outback", "Premium", "suv", 33000, []string{"AWD", "roof rails", "EyeSight"}},
	{2022, "Mazda", "CX-30", "Select", "suv", 26000, []string{"AWD", "safety features", "touchscreen"}},

	// Trucks
	{2018, "Ford", "F-150", "XLT", "truck", 28000, []string{"4WD", "towing package", "backup camera"}},
	{2023, "Ford", "F-150", "XLT", "truck", 42000, []string{"4WD", "towing package", "backup camera"}},
	{2023, "Chevrolet", "Silverado", "LT", "truck", 41000, []string{"4WD", "towing", "power seats"}},
	{2022, "Toyota", "Tacoma", "SR5", "truck", 38000, []string{"4WD", "towing", "off-road package"}},

	// Used Lexus (under $20k)
	{2010, "Lexus", "ES", "350", "sedan", 12000, []string{"leather", "sunroof", "premium audio", "heated seats"}},
	{2011, "Lexus", "IS", "250", "sedan", 13500, []string{"leather", "sunroof", "premium audio", "backup camera"}},
	{2012, "Lexus", "ES", "350", "sedan", 14500, []string{"leather", "sunroof", "navigation", "heated seats"}},
	{2013, "Lexus", "IS", "250", "sedan", 16000, []string{"leather", "sunroof", "premium audio", "sport package"}},
	{2014, "Lexus", "ES", "300h", "sedan", 17500, []string{"hybrid", "leather", "sunroof", "navigation", "backup camera"}},
	{2015, "Lexus", "ES", "350", "sedan", 19500, []string{"leather", "sunroof", "navigation", "heated seats", "premium audio"}},

	// Mid-range Lexus ($20k-$35k)
	{2016, "Lexus", "ES", "300h", "sedan", 24000, []string{"hybrid", "leather", "sunroof", "navigation"}},
	{2017, "Lexus", "ES", "350", "sedan", 25000, []string{"leather", "sunroof", "heated seats", "navigation"}},
	{2018, "Lexus", "IS", "300", "sedan", 28000, []string{"leather", "sunroof", "premium audio", "backup camera"}},
	{2016, "Lexus", "RX", "350", "suv", 30000, []string{"AWD", "leather", "sunroof", "navigation"}},
	{2019, "Lexus", "IS", "350", "sedan", 32000, []string{"leather", "sunroof", "premium audio", "V6 engine"}},
	{2018, "Lexus", "NX", "300", "suv", 32000, []string{"AWD", "leather", "sunroof", "backup camera"}},

	// Premium Lexus ($35k+)
	{2020, "Lexus", "ES", "350", "sedan", 38000, []string{"leather", "sunroof", "premium audio", "heated seats", "safety system"}},
	{2021, "Lexus", "IS", "300", "sedan", 40000, []string{"leather", "sunroof", "sport package", "premium audio"}},
	{2023, "Lexus", "ES", "350", "sedan", 45000, []string{"leather", "sunroof", "premium audio", "heated seats"}},
	{2023, "Lexus", "NX", "350", "suv", 46000, []string{"AWD", "leather", "panoramic roof", "premium audio"}},
	{2022, "Lexus", "RX", "350", "suv", 48000, []string{"AWD", "leather", "panoramic roof", "premium audio", "navigation"}},

	// Other luxury
	{2022, "BMW", "3 Series", "330i", "sedan", 48000, []string{"leather", "sunroof", "sport package"}},
	{2023, "Audi", "Q5", "Premium", "suv", 47000, []string{"AWD", "leather", "panoramic roof", "virtual cockpit"}},

	// Electric and hybrid
	{2023, "Tesla", "Model 3", "Long Range", "sedan", 50000, []string{"autopilot", "premium audio", "glass roof"}},
	{2023, "Toyota", "Prius", "XLE", "sedan", 32000, []string{"hybrid", "sunroof", "heated seats"}},
	{2023, "Hyundai", "Ioniq 5", "SEL", "suv", 45000, []string{"electric", "AWD", "fast charging"}},
	{2023, "Kia", "Forte", "GT-Line", "sedan", 25000, []string{"sunroof", "sport seats", "wireless charging"}},
}
