package catalog

// Seed returns the catalog used when storage holds no restaurants yet. Zones
// are grouped into price/time tiers; tiers are not part of the model.
func Seed() []Restaurant {
	return []Restaurant{
		{
			ID:   1,
			Name: "جوسي و كرنشي - خلدا",
			DeliveryZones: []DeliveryZone{
				// tier A: 1.00-1.50, 20-30 min
				{Zone: "خلدا", Price: 1.00, DeliveryTime: 20},
				{Zone: "دابوق", Price: 1.00, DeliveryTime: 22},
				{Zone: "تلاع العلي", Price: 1.00, DeliveryTime: 25},
				{Zone: "أم السماق", Price: 1.00, DeliveryTime: 25},
				{Zone: "الصويفية", Price: 1.00, DeliveryTime: 25},
				{Zone: "عبدون", Price: 1.50, DeliveryTime: 30},
				// tier B: 1.50-2.00, 30-45 min
				{Zone: "دير غبار", Price: 1.50, DeliveryTime: 35},
				{Zone: "الجامعة الأردنية", Price: 1.50, DeliveryTime: 35},
				{Zone: "حدائق الحسين", Price: 1.50, DeliveryTime: 40},
				{Zone: "الرابية", Price: 1.50, DeliveryTime: 40},
				{Zone: "العبدلي", Price: 1.50, DeliveryTime: 40},
				// tier C: 2.00-3.00, 45-60 min
				{Zone: "الشميساني", Price: 2.00, DeliveryTime: 50},
				{Zone: "وادي السير", Price: 2.00, DeliveryTime: 55},
				{Zone: "ماركا", Price: 2.50, DeliveryTime: 55},
				{Zone: "طبربور", Price: 3.00, DeliveryTime: 60},
			},
		},
		{
			ID:   2,
			Name: "جوسي و كرنشي - أبو نصير",
			DeliveryZones: []DeliveryZone{
				{Zone: "أبو نصير", Price: 1.00, DeliveryTime: 20},
				{Zone: "شفا بدران", Price: 1.00, DeliveryTime: 22},
				{Zone: "الجبية", Price: 1.00, DeliveryTime: 25},
				{Zone: "ضاحية الرشيد", Price: 1.00, DeliveryTime: 25},
				{Zone: "تلاع العلي الشمالي", Price: 1.00, DeliveryTime: 25},
				{Zone: "النزهة", Price: 1.00, DeliveryTime: 30},

				{Zone: "ماركا الشمالية", Price: 1.50, DeliveryTime: 35},
				{Zone: "طبربور", Price: 1.50, DeliveryTime: 35},
				{Zone: "خلدا", Price: 1.50, DeliveryTime: 40},
				{Zone: "صويلح", Price: 1.50, DeliveryTime: 40},
				{Zone: "ناعور", Price: 1.50, DeliveryTime: 40},

				{Zone: "الرمثا", Price: 2.00, DeliveryTime: 50},
				{Zone: "المفرق", Price: 2.50, DeliveryTime: 55},
				{Zone: "عجلون", Price: 3.00, DeliveryTime: 60},
			},
		},
		{
			ID:   3,
			Name: "تايك ا بيت - جبل الحسين",
			DeliveryZones: []DeliveryZone{
				{Zone: "جبل الحسين", Price: 1.00, DeliveryTime: 20},
				{Zone: "العبدلي", Price: 1.00, DeliveryTime: 22},
				{Zone: "الشميساني", Price: 1.00, DeliveryTime: 25},
				{Zone: "وسط البلد", Price: 1.00, DeliveryTime: 25},
				{Zone: "اللويبدة", Price: 1.00, DeliveryTime: 25},
				{Zone: "جبل عمّان (الدوار 1)", Price: 1.00, DeliveryTime: 30},
				{Zone: "جبل عمّان (الدوار 2)", Price: 1.00, DeliveryTime: 30},
				{Zone: "جبل عمّان (الدوار 3)", Price: 1.00, DeliveryTime: 30},

				{Zone: "عبدون", Price: 1.50, DeliveryTime: 35},
				{Zone: "الصويفية", Price: 1.50, DeliveryTime: 35},
				{Zone: "أم أذينة", Price: 1.50, DeliveryTime: 40},
				{Zone: "القويسمة", Price: 1.50, DeliveryTime: 40},

				{Zone: "اليرموك", Price: 2.00, DeliveryTime: 50},
				{Zone: "جبل الهوس", Price: 2.00, DeliveryTime: 50},
				{Zone: "الدوار الرابع", Price: 2.50, DeliveryTime: 55},
				{Zone: "الدوار الخامس", Price: 2.50, DeliveryTime: 55},
			},
		},
		{
			ID:   4,
			Name: "تايك ا بيت - جبل عمّان",
			DeliveryZones: []DeliveryZone{
				{Zone: "شارع الرينبو", Price: 1.00, DeliveryTime: 20},
				{Zone: "الدوار الأول", Price: 1.00, DeliveryTime: 22},
				{Zone: "الدوار الثاني", Price: 1.00, DeliveryTime: 22},
				{Zone: "الدوار الثالث", Price: 1.00, DeliveryTime: 25},
				{Zone: "عبدون", Price: 1.00, DeliveryTime: 25},
				{Zone: "رغدان", Price: 1.00, DeliveryTime: 25},
				{Zone: "العبدلي", Price: 1.00, DeliveryTime: 30},

				{Zone: "رأس العين", Price: 1.50, DeliveryTime: 35},
				{Zone: "الصويفية", Price: 1.50, DeliveryTime: 35},
				{Zone: "دير غبار", Price: 1.50, DeliveryTime: 40},
				{Zone: "أم أذينة", Price: 1.50, DeliveryTime: 40},
				{Zone: "القويسمة", Price: 1.50, DeliveryTime: 40},

				{Zone: "اليرموك", Price: 2.00, DeliveryTime: 50},
				{Zone: "جبل الهوس", Price: 2.00, DeliveryTime: 50},
				{Zone: "الدوار الرابع", Price: 2.50, DeliveryTime: 55},
				{Zone: "الدوار الخامس", Price: 2.50, DeliveryTime: 55},
			},
		},
		{
			ID:   5,
			Name: "أون بيتزا - مكسيم مول / جبل الحسين",
			DeliveryZones: []DeliveryZone{
				{Zone: "جبل الحسين", Price: 1.00, DeliveryTime: 20},
				{Zone: "الشميساني", Price: 1.00, DeliveryTime: 22},
				{Zone: "العبدلي", Price: 1.00, DeliveryTime: 25},
				{Zone: "اللويبدة", Price: 1.00, DeliveryTime: 25},
				{Zone: "جبل عمّان", Price: 1.00, DeliveryTime: 25},
				{Zone: "عبدون", Price: 1.00, DeliveryTime: 30},
				{Zone: "الصويفية", Price: 1.00, DeliveryTime: 30},

				{Zone: "أم أذينة", Price: 1.50, DeliveryTime: 35},
				{Zone: "تلاع العلي", Price: 1.50, DeliveryTime: 35},
				{Zone: "القويسمة", Price: 1.50, DeliveryTime: 40},
				{Zone: "اليرموك", Price: 1.50, DeliveryTime: 40},
				{Zone: "جبل الهوس", Price: 1.50, DeliveryTime: 40},

				{Zone: "الدوار الرابع", Price: 2.00, DeliveryTime: 50},
				{Zone: "الدوار الخامس", Price: 2.00, DeliveryTime: 50},
				{Zone: "الدوار السادس", Price: 2.50, DeliveryTime: 55},
				{Zone: "الدوار السابع", Price: 2.50, DeliveryTime: 55},
			},
		},
		{
			ID:   6,
			Name: "بيتزا ستاشن - عبدون",
			DeliveryZones: []DeliveryZone{
				{Zone: "عبدون", Price: 1.00, DeliveryTime: 20},
				{Zone: "الراشدية", Price: 1.00, DeliveryTime: 22},
				{Zone: "جبل عمان", Price: 1.00, DeliveryTime: 25},
				{Zone: "الدوار الأول", Price: 1.00, DeliveryTime: 25},
				{Zone: "الدوار الثاني", Price: 1.00, DeliveryTime: 25},
				{Zone: "الدوار الثالث", Price: 1.00, DeliveryTime: 30},

				{Zone: "العبدلي", Price: 1.50, DeliveryTime: 35},
				{Zone: "الشميساني", Price: 1.50, DeliveryTime: 35},
				{Zone: "جبل الحسين", Price: 1.50, DeliveryTime: 40},
				{Zone: "الصويفية", Price: 1.50, DeliveryTime: 40},
				{Zone: "القويسمة", Price: 1.50, DeliveryTime: 40},

				{Zone: "اليرموك", Price: 2.00, DeliveryTime: 50},
				{Zone: "جبل الهوس", Price: 2.00, DeliveryTime: 50},
				{Zone: "الدوار الرابع", Price: 2.50, DeliveryTime: 55},
				{Zone: "الدوار الخامس", Price: 2.50, DeliveryTime: 55},
			},
		},
	}
}
