package sales

import "hermannm.dev/enumnames"

// One of the categorical columns of the sales dataset, usable for filtering and for category
// analysis.
type CategoryField uint8

const (
	CategoryFieldState CategoryField = iota + 1
	CategoryFieldMake
	CategoryFieldModel
	CategoryFieldBodyStyle
	CategoryFieldDriveType
	CategoryFieldTrim
)

var categoryFieldMap = enumnames.NewMap(map[CategoryField]string{
	CategoryFieldState:     ColumnState,
	CategoryFieldMake:      ColumnMake,
	CategoryFieldModel:     ColumnModel,
	CategoryFieldBodyStyle: ColumnBodyStyle,
	CategoryFieldDriveType: ColumnDriveType,
	CategoryFieldTrim:      ColumnTrim,
})

// All categorical fields, in the order they appear in the dataset schema.
func CategoryFields() []CategoryField {
	return []CategoryField{
		CategoryFieldState,
		CategoryFieldMake,
		CategoryFieldModel,
		CategoryFieldBodyStyle,
		CategoryFieldDriveType,
		CategoryFieldTrim,
	}
}

func (field CategoryField) IsValid() bool {
	return categoryFieldMap.ContainsEnumValue(field)
}

func (field CategoryField) String() string {
	return categoryFieldMap.GetNameOrFallback(field, "INVALID_CATEGORY_FIELD")
}

func (field CategoryField) MarshalJSON() ([]byte, error) {
	return categoryFieldMap.MarshalToNameJSON(field)
}

func (field *CategoryField) UnmarshalJSON(bytes []byte) error {
	return categoryFieldMap.UnmarshalFromNameJSON(bytes, field)
}
