package catalog

import (
	"strings"

	"github.com/tmbale/storefront-backend/internal/platform/database"
)

// DefaultMaxPageSize caps the page size a caller may request. Oversized
// requests are clamped, not rejected, to bound worst-case query cost.
const DefaultMaxPageSize = 100

const productColumns = `id, name, description, price, category, in_stock, created_date`

// compiledFilter is a Filter pushed down into bound SQL: a page query
// with deterministic ordering and offset/limit, plus a companion count
// query sharing the same predicate so the total comes from the store.
type compiledFilter struct {
	pageQuery string
	pageArgs  []any
	countSQL  string
	countArgs []any
}

// compileFilter turns f into bound queries. All supplied predicates are
// combined with AND and evaluated by the store, equivalent to filtering
// an in-memory scan of every row. page < 1 clamps to 1; pageSize <= 0 is
// rejected; pageSize above maxPageSize clamps.
func compileFilter(f Filter, maxPageSize int) (*compiledFilter, error) {
	if f.PageSize <= 0 {
		return nil, database.New(database.KindInvalidRequest, "catalog: page size must be positive")
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size > maxPageSize {
		size = maxPageSize
	}

	var conds []string
	params := map[string]any{}

	if f.Category != "" {
		conds = append(conds, "category = :category")
		params["category"] = f.Category
	}
	if f.MinPrice != nil {
		conds = append(conds, "price >= :min_price")
		params["min_price"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		conds = append(conds, "price <= :max_price")
		params["max_price"] = *f.MaxPrice
	}
	if f.Search != "" {
		conds = append(conds, "(name ILIKE :search OR description ILIKE :search)")
		params["search"] = "%" + escapeLike(f.Search) + "%"
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	countSQL, countArgs, err := database.Bind(
		`SELECT COUNT(*) FROM products`+where,
		params,
	)
	if err != nil {
		return nil, err
	}

	// Stable sort key keeps pagination consistent across calls while the
	// underlying data is unchanged.
	params["offset"] = (page - 1) * size
	params["limit"] = size
	pageQuery, pageArgs, err := database.Bind(
		`SELECT `+productColumns+` FROM products`+where+` ORDER BY id ASC OFFSET :offset LIMIT :limit`,
		params,
	)
	if err != nil {
		return nil, err
	}

	return &compiledFilter{
		pageQuery: pageQuery,
		pageArgs:  pageArgs,
		countSQL:  countSQL,
		countArgs: countArgs,
	}, nil
}

// escapeLike makes the search term a literal substring match: %, _ and
// the backslash (Postgres' default LIKE escape) lose their wildcard
// meaning inside the pattern.
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}
