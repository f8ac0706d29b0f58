package models

// Category is one of the fixed portion groups the diet methodology counts.
// Portions are hand-sized (palm, fist, thumb), not weighed.
type Category struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Subtitle      string  `json:"subtitle"`
	Color         string  `json:"color"`
	AllowMultiple bool    `json:"allow_multiple"`
	Groups        []Group `json:"groups"`
}

// Group is a sub-classification inside a category (e.g. "fish" in protein).
type Group struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	PortionMetric string   `json:"portion_metric"`
	Ingredients   []string `json:"ingredients"`
}

// CategoryVegetables never flags an over-target state: eating more
// vegetables than planned is a win, not a warning.
const CategoryVegetables = "color"

// FoodData is the static reference taxonomy. Read-only.
var FoodData = []Category{
	{
		ID: "protein", Title: "La Proteína", Subtitle: "Construcción", Color: "red", AllowMultiple: true,
		Groups: []Group{
			{
				ID: "meat", Name: "Carnes", Description: "Pollo, Ternera, Cerdo...",
				PortionMetric: "1 Palma",
				Ingredients:   []string{"Pollo", "Pavo", "Conejo", "Ternera", "Cerdo sin grasa", "Hamburguesa magra", "Vísceras"},
			},
			{
				ID: "fish", Name: "Pescados", Description: "Merluza, Salmón, Atún...",
				PortionMetric: "1 Palma",
				Ingredients:   []string{"Merluza", "Bacalao", "Salmón", "Atún", "Caballa", "Jurel", "Sardinas", "Pescado blanco"},
			},
			{
				ID: "seafood", Name: "Moluscos", Description: "Gambas, Calamar, Mejillones...",
				PortionMetric: "1 Palma",
				Ingredients:   []string{"Gambas", "Calamar", "Almejas", "Mejillones"},
			},
			{
				ID: "dairy_zero", Name: "Lácteos 0% y Huevos", Description: "Quesos 0%, Suero, Huevos...",
				PortionMetric: "2 Huevos / 1 Taza",
				Ingredients:   []string{"Huevos", "Claras", "Queso Fresco 0%", "Queso Batido 0%", "Yogur Griego", "Kefir", "Suero de proteína", "Requesón"},
			},
			{
				ID: "veggie_prot", Name: "Veggie", Description: "Tofu, Soja, Edamame...",
				PortionMetric: "1 Palma",
				Ingredients:   []string{"Tofu", "Soja Texturizada", "Edamame", "Seitán", "Tempeh", "Legumbre (Proteína)"},
			},
		},
	},
	{
		ID: "color", Title: "La Verdura", Subtitle: "Fibra y Salud", Color: "green", AllowMultiple: true,
		Groups: []Group{
			{
				ID: "leaves", Name: "Hojas", Description: "Espinaca, Rúcula, Kale...",
				PortionMetric: "Libre / 2 Manos",
				Ingredients:   []string{"Espinacas", "Canónigos", "Rúcula", "Acelgas", "Kale", "Endivias", "Col", "Lechuga"},
			},
			{
				ID: "cruciferous", Name: "Crucíferas", Description: "Brócoli, Coliflor...",
				PortionMetric: "1 Puño / Libre",
				Ingredients:   []string{"Brócoli", "Coliflor", "Repollo", "Lombarda", "Col de Bruselas"},
			},
			{
				ID: "green_veg", Name: "Verdes", Description: "Espárragos, Apio, Pepino...",
				PortionMetric: "Libre / 2 Manos",
				Ingredients:   []string{"Espárragos", "Apio", "Pepino", "Habas verdes", "Calabacín", "Alcachofa"},
			},
			{
				ID: "colors", Name: "Colores", Description: "Tomate, Zanahoria, Setas...",
				PortionMetric: "Libre / 1 Puño",
				Ingredients:   []string{"Tomate", "Pimiento", "Zanahoria", "Calabaza", "Berenjena", "Cebolla", "Setas"},
			},
		},
	},
	{
		ID: "carbs", Title: "El Carbohidrato", Subtitle: "Energía Rápida", Color: "orange", AllowMultiple: true,
		Groups: []Group{
			{
				ID: "tubers", Name: "Tubérculos", Description: "Patata, Boniato...",
				PortionMetric: "1 Puño cerrado",
				Ingredients:   []string{"Patata", "Boniato", "Gnocchi", "Yuca"},
			},
			{
				ID: "grains", Name: "Granos", Description: "Arroz, Avena, Pasta...",
				PortionMetric: "1 Mano en cuenco",
				Ingredients:   []string{"Arroz", "Avena", "Pasta", "Quinoa", "Pan Wasa", "Tortitas Arroz/Maíz"},
			},
			{
				ID: "legumes", Name: "Legumbres", Description: "Lentejas, Alubias, Guisantes",
				PortionMetric: "2 Manos en cuenco",
				Ingredients:   []string{"Lentejas", "Alubias", "Guisantes", "Garbanzos", "Soja"},
			},
			{
				ID: "fruit", Name: "Frutas", Description: "Fresas, Melón, Plátano...",
				PortionMetric: "1 Pieza / Taza",
				Ingredients:   []string{"Fresas/Frambuesas", "Arándanos/Moras", "Melón/Sandía", "Manzana/Pera", "Plátano", "Uvas", "Melocotón", "Kiwi", "Naranja"},
			},
		},
	},
	{
		ID: "fats", Title: "La Grasa", Subtitle: "Salud Hormonal", Color: "yellow", AllowMultiple: true,
		Groups: []Group{
			{
				ID: "oils", Name: "Aceites y Mantequilla", Description: "Oliva, Coco, Ghee...",
				PortionMetric: "1 Cda. Sopera",
				Ingredients:   []string{"Aceite Oliva V.E.", "Aceite Coco V.E.", "Mantequilla", "Ghee"},
			},
			{
				ID: "fruit_fat", Name: "Frutal", Description: "Aguacate, Aceitunas...",
				PortionMetric: "1/2 Pieza / Puñado",
				Ingredients:   []string{"Aguacate", "Aceitunas", "Coco natural"},
			},
			{
				ID: "nuts", Name: "Frutos Secos", Description: "Nueces, Almendras, Pipas...",
				PortionMetric: "1 Pulgar / Puñadito",
				Ingredients:   []string{"Nueces", "Almendras", "Avellanas", "Pistachos", "Anacardos", "Nueces Macadamia", "Nueces Pecanas", "Pipas Girasol", "Pipas Calabaza"},
			},
			{
				ID: "creamy", Name: "Otros", Description: "Queso, Chocolate...",
				PortionMetric: "1 Onza / Pulgar",
				Ingredients:   []string{"Queso curado", "Chocolate >85%", "Crema Frutos Secos"},
			},
		},
	},
	{
		ID: "magic", Title: "La Magia", Subtitle: "Sabor", Color: "purple", AllowMultiple: true,
		Groups: []Group{
			{
				ID: "spices", Name: "Especias", Description: "Cúrcuma, Orégano, Canela...",
				PortionMetric: "Al gusto",
				Ingredients:   []string{"Cúrcuma", "Chile", "Jengibre", "Pimienta", "Azafrán", "Orégano", "Perejil", "Nuez Moscada", "Comino", "Canela", "Ajo", "Sésamo"},
			},
			{
				ID: "seasoning", Name: "Condimentos", Description: "Sal, Vinagre, Limón...",
				PortionMetric: "Con moderación",
				Ingredients:   []string{"Sal marina", "Vinagre de vino", "Vinagre de manzana", "Limón", "Mostaza"},
			},
			{
				ID: "drinks", Name: "Bebidas", Description: "Agua, Té, Café...",
				PortionMetric: "A demanda",
				Ingredients:   []string{"Agua", "Té sin azúcar", "Café solo", "Refresco Zero"},
			},
		},
	},
}
