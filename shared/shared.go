package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"patientflow/shared/cache"
	"patientflow/shared/constant"
	"patientflow/shared/dto"
	"patientflow/shared/timezone"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func ConvertStringToInt(value string) (int, error) {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to convert string to int: %w", err)
	}

	return intValue, nil
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the fields of a struct into a map of updated fields.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins key segments into a namespaced cache key.
func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery derives a bounded cache key from pagination and
// filter state so each distinct listing query gets its own cache slot.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	raw, err := json.Marshal(args)
	if err != nil {
		raw = []byte(fmt.Sprintf("%v", args))
	}

	hasher := fnv.New64a()
	hasher.Write([]byte(where))
	hasher.Write(raw)
	fmt.Fprintf(hasher, "%d:%d:%s:%s", params.Page, params.Limit, params.SortBy, params.SortDir)

	return fmt.Sprintf("%s:%x", prefix, hasher.Sum64())
}

// InvalidateCaches clears every cached entry under the given prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
