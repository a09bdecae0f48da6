package analysis

import "github.com/codelens/api/internal/models"

// Examples pre-populate the form
var Examples = []models.CodeSubmission{
	{
		Code:        "x = [1,2,3,4,5]\ny = [i*i for i in x if i%2==0]\nprint(y)",
		Language:    models.LanguagePython,
		DetailLevel: models.DetailDetailed,
		RequestType: models.RequestExplainer,
	},
	{
		Code: "import math\n\n" +
			"def calculate_area(radius):\n" +
			"  return math.pi * radius * radius\n\n" +
			"radius_list = [3, 5, 7]\n" +
			"area_list = list(map(calculate_area, radius_list))\n" +
			"print(area_list)",
		Language:    models.LanguagePython,
		DetailLevel: models.DetailDetailed,
		RequestType: models.RequestRefactoring,
	},
	{
		Code:        "def add(a, b):\n  return a + b",
		Language:    models.LanguagePython,
		DetailLevel: models.DetailDetailed,
		RequestType: models.RequestUnitTests,
	},
	{
		Code:        "def add(a, b):\n  return a + b",
		Language:    models.LanguagePython,
		DetailLevel: models.DetailDetailed,
		RequestType: models.RequestQualityMetrics,
	},
}
