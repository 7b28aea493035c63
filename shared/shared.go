package shared

import (
	"context"
	"crypto/sha1" //nolint:gosec
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	"bazaar/shared/cache"
	"bazaar/shared/constant"
	"bazaar/shared/dto"
	"bazaar/shared/model"
)

const cacheKeySeparator = ":"

// FilterByID matches a single row of table by its id column.
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

// BuildCacheKey joins the prefix and parts into a redis key such as "booking:get:<id>".
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key from the list parameters and filters.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	raw, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Where  string          `json:"where"`
		Args   map[string]any  `json:"args"`
	}{params, where, args})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache query")

		return BuildCacheKey(prefix, where)
	}

	sum := sha1.Sum(raw) //nolint:gosec

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:]))
}

// InvalidateCaches removes every key under prefix. Errors are logged because callers run it in the background.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+cacheKeySeparator+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// GetPrincipal returns the caller placed on the context by the auth middleware.
func GetPrincipal(ctx context.Context) (model.Principal, bool) {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if id == "" {
		return model.Principal{}, false
	}

	return model.Principal{ID: id, Role: role}, true
}

// WithPrincipal stores the caller on the context the same way the auth middleware does.
func WithPrincipal(ctx context.Context, principal model.Principal) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, principal.ID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, principal.Role)
}
