package enums

import "fmt"

// CategoryLevel positions a category inside the head > sub > micro taxonomy.
type CategoryLevel string

const (
	CategoryLevelHead  CategoryLevel = "head"
	CategoryLevelSub   CategoryLevel = "sub"
	CategoryLevelMicro CategoryLevel = "micro"
)

var validCategoryLevels = []CategoryLevel{
	CategoryLevelHead,
	CategoryLevelSub,
	CategoryLevelMicro,
}

// String implements fmt.Stringer.
func (l CategoryLevel) String() string {
	return string(l)
}

// IsValid reports whether the value is a known CategoryLevel.
func (l CategoryLevel) IsValid() bool {
	for _, candidate := range validCategoryLevels {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseCategoryLevel converts raw input into a CategoryLevel.
func ParseCategoryLevel(value string) (CategoryLevel, error) {
	for _, candidate := range validCategoryLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category level %q", value)
}
