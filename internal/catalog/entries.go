package catalog

import "github.com/agenthands/labscan/internal/core/model"

var entries = []model.CatalogEntry{
	// Chemistry
	{Name: "Beaker", Icon: "beaker", Description: "A cylindrical container used for stirring, mixing and heating liquids.", Category: "Chemistry"},
	{Name: "Erlenmeyer Flask", Icon: "flask-conical", Description: "A conical flask used to hold and mix chemicals, heat liquids.", Category: "Chemistry"},
	{Name: "Test Tube", Icon: "test-tube-2", Description: "A thin glass tube used to hold small amounts of material for experiments.", Category: "Chemistry"},
	{Name: "Pipette", Icon: "pipette", Description: "Used to transport a measured volume of liquid.", Category: "Chemistry"},
	{Name: "Bunsen Burner", Icon: "flame", Description: "Produces a single open gas flame, which is used for heating.", Category: "Chemistry"},
	{Name: "Dropper", Icon: "droplet", Description: "A small tube with a rubber bulb used to transfer small amounts of liquid.", Category: "Chemistry"},
	{Name: "Filter Paper", Icon: "filter", Description: "Porous paper used to separate solids from liquids in filtration.", Category: "Chemistry"},
	{Name: "Graduated Cylinder", Icon: "graduation-cap", Description: "A tall, narrow container with volume markings for precise liquid measurement.", Category: "Chemistry"},
	{Name: "Test Tube Rack", Icon: "test-tube", Description: "A holder for organizing and storing test tubes during experiments.", Category: "Chemistry"},
	{Name: "Safety Goggles", Icon: "eye", Description: "Protective eyewear to shield eyes from chemical splashes and flying debris.", Category: "Safety"},

	// Biology
	{Name: "Microscope", Icon: "microscope", Description: "An instrument used to see objects that are too small for the naked eye.", Category: "Biology"},
	{Name: "Petri Dish", Icon: "droplets", Description: "A shallow dish used to culture bacteria and other microorganisms.", Category: "Biology"},
	{Name: "Dissecting Kit", Icon: "book-open", Description: "A set of tools used for dissecting specimens in biology labs.", Category: "Biology"},
	{Name: "Slide and Cover Slip", Icon: "eye", Description: "Glass slides and covers used to prepare specimens for microscopic examination.", Category: "Biology"},
	{Name: "Plant Pot", Icon: "graduation-cap", Description: "Container used for growing plants and conducting plant experiments.", Category: "Biology"},

	// Physics
	{Name: "Magnet", Icon: "magnet", Description: "An object that produces a magnetic field and attracts certain materials.", Category: "Physics"},
	{Name: "Light Bulb", Icon: "lightbulb", Description: "A device that produces light when electricity passes through it.", Category: "Physics"},
	{Name: "Battery", Icon: "battery", Description: "A device that stores and provides electrical energy for experiments.", Category: "Physics"},
	{Name: "Wire", Icon: "zap", Description: "Conductive material used to connect electrical components in circuits.", Category: "Physics"},
	{Name: "Pulley", Icon: "gauge", Description: "A wheel with a groove used to change the direction of force in experiments.", Category: "Physics"},
	{Name: "Spring Scale", Icon: "scale", Description: "A device that measures force by the extension of a spring.", Category: "Physics"},

	// Measurement
	{Name: "Digital Scale", Icon: "scale", Description: "An instrument used to measure mass with high precision.", Category: "Measurement"},
	{Name: "Thermometer", Icon: "thermometer", Description: "A device that measures temperature or a temperature gradient.", Category: "Measurement"},
	{Name: "Ruler", Icon: "ruler", Description: "A straight edge with markings used to measure length and draw straight lines.", Category: "Measurement"},
	{Name: "Stopwatch", Icon: "timer", Description: "A device used to measure time intervals during experiments.", Category: "Measurement"},
	{Name: "Calculator", Icon: "calculator", Description: "An electronic device used for mathematical calculations in experiments.", Category: "Measurement"},

	// General
	{Name: "Lab Apron", Icon: "book-open", Description: "Protective clothing worn to shield the body from chemical spills and stains.", Category: "Safety"},
	{Name: "Gloves", Icon: "droplets", Description: "Protective hand coverings used when handling chemicals or hot materials.", Category: "Safety"},
	{Name: "Funnel", Icon: "filter", Description: "A cone-shaped tool used to channel liquids or fine-grained substances into containers.", Category: "General"},
	{Name: "Stirring Rod", Icon: "atom", Description: "A glass rod used to stir solutions and mixtures in the laboratory.", Category: "General"},
	{Name: "Tongs", Icon: "gauge", Description: "A tool used to grip and lift hot objects or containers safely.", Category: "General"},
	{Name: "Beaker Tongs", Icon: "beaker", Description: "Specialized tongs designed to hold and transport beakers safely.", Category: "General"},
}
