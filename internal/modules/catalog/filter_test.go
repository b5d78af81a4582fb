package catalog

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/tmbale/storefront-backend/internal/platform/database"
)

func TestCompileFilterEmpty(t *testing.T) {
	c := qt.New(t)

	compiled, err := compileFilter(Filter{Page: 1, PageSize: 20}, DefaultMaxPageSize)
	c.Assert(err, qt.IsNil)
	c.Assert(compiled.pageQuery, qt.Equals,
		`SELECT `+productColumns+` FROM products ORDER BY id ASC OFFSET $1 LIMIT $2`)
	c.Assert(compiled.pageArgs, qt.DeepEquals, []any{0, 20})
	c.Assert(compiled.countSQL, qt.Equals, `SELECT COUNT(*) FROM products`)
	c.Assert(compiled.countArgs, qt.HasLen, 0)
}

func TestCompileFilterAllPredicates(t *testing.T) {
	c := qt.New(t)

	min, max := 5.0, 10.0
	compiled, err := compileFilter(Filter{
		Category: "tools",
		MinPrice: &min,
		MaxPrice: &max,
		Search:   "drill",
		Page:     3,
		PageSize: 20,
	}, DefaultMaxPageSize)
	c.Assert(err, qt.IsNil)

	where := ` WHERE category = $1 AND price >= $2 AND price <= $3 AND (name ILIKE $4 OR description ILIKE $4)`
	c.Assert(compiled.countSQL, qt.Equals, `SELECT COUNT(*) FROM products`+where)
	c.Assert(compiled.countArgs, qt.DeepEquals, []any{"tools", 5.0, 10.0, "%drill%"})
	c.Assert(compiled.pageQuery, qt.Equals,
		`SELECT `+productColumns+` FROM products`+where+` ORDER BY id ASC OFFSET $5 LIMIT $6`)
	c.Assert(compiled.pageArgs, qt.DeepEquals, []any{"tools", 5.0, 10.0, "%drill%", 40, 20})
}

func TestCompileFilterEscapesSearchWildcards(t *testing.T) {
	c := qt.New(t)

	compiled, err := compileFilter(Filter{Search: `50%_off\`, Page: 1, PageSize: 10}, DefaultMaxPageSize)
	c.Assert(err, qt.IsNil)
	// The term matches literally: its wildcard characters are escaped so
	// push-down is equivalent to a naive substring scan.
	c.Assert(compiled.countArgs, qt.DeepEquals, []any{`%50\%\_off\\%`})
}

func TestCompileFilterClampsPage(t *testing.T) {
	c := qt.New(t)

	compiled, err := compileFilter(Filter{Page: -3, PageSize: 10}, DefaultMaxPageSize)
	c.Assert(err, qt.IsNil)
	c.Assert(compiled.pageArgs, qt.DeepEquals, []any{0, 10})
}

func TestCompileFilterClampsOversizedPageSize(t *testing.T) {
	c := qt.New(t)

	compiled, err := compileFilter(Filter{Page: 1, PageSize: 5000}, DefaultMaxPageSize)
	c.Assert(err, qt.IsNil)
	c.Assert(compiled.pageArgs, qt.DeepEquals, []any{0, DefaultMaxPageSize})
}

func TestCompileFilterRejectsNonPositivePageSize(t *testing.T) {
	c := qt.New(t)

	_, err := compileFilter(Filter{Page: 1, PageSize: 0}, DefaultMaxPageSize)
	c.Assert(database.KindOf(err), qt.Equals, database.KindInvalidRequest)

	_, err = compileFilter(Filter{Page: 1, PageSize: -5}, DefaultMaxPageSize)
	c.Assert(database.KindOf(err), qt.Equals, database.KindInvalidRequest)
}
