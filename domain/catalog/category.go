package catalog

// Category classifies a catalog entry into one of the seven fixed
// dataset categories used for color-coding and legend generation.
type Category string

const (
	CategoryClinical       Category = "Clinical & Patient Data"
	CategoryOmics          Category = "Omics & Molecular Data"
	CategoryImaging        Category = "Imaging Data"
	CategoryBiobank        Category = "Biobank & Sample Data"
	CategoryPublicHealth   Category = "Public Health & Registry Data"
	CategoryEnvironmental  Category = "Environmental & Lifestyle Data"
	CategoryAdministrative Category = "Administrative & Claims Data"
)

// Categories lists every category in display order. The legend and the
// dashboard iterate this slice so ordering stays stable across renders.
var Categories = []Category{
	CategoryClinical,
	CategoryOmics,
	CategoryImaging,
	CategoryBiobank,
	CategoryPublicHealth,
	CategoryEnvironmental,
	CategoryAdministrative,
}

// palette maps each category to its hex swatch.
var palette = map[Category]string{
	CategoryClinical:       "#1f77b4",
	CategoryOmics:          "#ff7f0e",
	CategoryImaging:        "#2ca02c",
	CategoryBiobank:        "#d62728",
	CategoryPublicHealth:   "#9467bd",
	CategoryEnvironmental:  "#8c564b",
	CategoryAdministrative: "#e377c2",
}

// Color returns the hex color assigned to the category. Unknown
// categories fall back to a neutral gray so a bad record cannot break
// the renderer.
func (c Category) Color() string {
	if color, ok := palette[c]; ok {
		return color
	}
	return "#999999"
}

// Valid reports whether c is one of the seven fixed categories.
func (c Category) Valid() bool {
	_, ok := palette[c]
	return ok
}

// ParseCategory returns the category matching the given label.
func ParseCategory(label string) (Category, bool) {
	c := Category(label)
	return c, c.Valid()
}
