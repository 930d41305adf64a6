package utils

import (
	"reflect"
	"strconv"

	"transhub/internal/models"
	"transhub/internal/types"
)

// GenerateSettingsMetadata builds the API metadata view of the system
// settings from the struct tags, in declaration order.
func GenerateSettingsMetadata(settings *types.SystemSettings) []models.SystemSettingInfo {
	var infos []models.SystemSettingInfo

	v := reflect.ValueOf(settings).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonKey := field.Tag.Get("json")
		if jsonKey == "" || jsonKey == "-" {
			continue
		}

		infos = append(infos, models.SystemSettingInfo{
			Key:          jsonKey,
			Value:        v.Field(i).Interface(),
			Name:         field.Tag.Get("name"),
			Category:     field.Tag.Get("category"),
			Description:  field.Tag.Get("desc"),
			DefaultValue: parseDefaultTag(field),
		})
	}
	return infos
}

func parseDefaultTag(field reflect.StructField) any {
	raw := field.Tag.Get("default")
	switch field.Type.Kind() {
	case reflect.Int:
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
		return 0
	case reflect.Bool:
		b, _ := strconv.ParseBool(raw)
		return b
	default:
		return raw
	}
}
