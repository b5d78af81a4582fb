package catalog

import (
	"context"
	"database/sql/driver"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/tmbale/storefront-backend/internal/platform/database"
	"github.com/tmbale/storefront-backend/internal/platform/database/databasetest"
)

var productCols = []string{"id", "name", "description", "price", "category", "in_stock", "created_date"}

func productRow(id int64, name string, description driver.Value, price float64) []driver.Value {
	return []driver.Value{
		id, name, description, price, "tools", true,
		time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC),
	}
}

// listStore serves the count query and the page query of a List call.
func listStore(total int64, rows [][]driver.Value) *databasetest.Store {
	return &databasetest.Store{
		QueryFn: func(query string, args []driver.NamedValue) ([]string, [][]driver.Value, error) {
			if strings.HasPrefix(query, "SELECT COUNT(*)") {
				return []string{"count"}, [][]driver.Value{{total}}, nil
			}
			return productCols, rows, nil
		},
	}
}

func TestListMapsRowsAndTotal(t *testing.T) {
	c := qt.New(t)

	store := listStore(7, [][]driver.Value{
		productRow(1, "hammer", "claw hammer", 12.5),
		productRow(2, "drill", nil, 79.99),
	})
	repo := NewPostgresRepository(store.Open())

	products, total, err := repo.List(context.Background(), Filter{Page: 1, PageSize: 2})
	c.Assert(err, qt.IsNil)
	// Total comes from the companion count query, not from the page.
	c.Assert(total, qt.Equals, 7)
	c.Assert(products, qt.HasLen, 2)
	c.Assert(products[0].Name, qt.Equals, "hammer")
	c.Assert(products[0].Description, qt.Equals, "claw hammer")
	c.Assert(products[1].Description, qt.Equals, "")
	c.Assert(products[1].Price, qt.Equals, 79.99)

	c.Assert(store.CallCount(), qt.Equals, 2)
}

func TestListPagesAreContiguous(t *testing.T) {
	c := qt.New(t)

	store := listStore(10, nil)
	repo := NewPostgresRepository(store.Open())

	_, _, err := repo.List(context.Background(), Filter{Page: 1, PageSize: 4})
	c.Assert(err, qt.IsNil)
	_, _, err = repo.List(context.Background(), Filter{Page: 2, PageSize: 4})
	c.Assert(err, qt.IsNil)

	calls := store.Calls()
	c.Assert(calls, qt.HasLen, 4)
	// Same ordered sequence, adjacent offsets: page 2 starts where
	// page 1 ended.
	first, second := calls[1], calls[3]
	c.Assert(first.Query, qt.Equals, second.Query)
	c.Assert(first.Args[0].Value, qt.Equals, int64(0))
	c.Assert(second.Args[0].Value, qt.Equals, int64(4))
	c.Assert(first.Args[1].Value, qt.Equals, int64(4))
}

func TestListSearchIsPushedDown(t *testing.T) {
	c := qt.New(t)

	hostile := `x' OR '1'='1`
	store := listStore(0, nil)
	repo := NewPostgresRepository(store.Open())

	_, _, err := repo.List(context.Background(), Filter{Search: hostile, Page: 1, PageSize: 10})
	c.Assert(err, qt.IsNil)

	calls := store.Calls()
	c.Assert(calls, qt.HasLen, 2)
	for _, call := range calls {
		c.Assert(strings.Contains(call.Query, hostile), qt.IsFalse)
		c.Assert(strings.Contains(call.Query, "ILIKE"), qt.IsTrue)
		c.Assert(call.Args[0].Value, qt.Equals, `%x' OR '1'='1%`)
	}
}

func TestCreateReturnsStoreAssignedIdentity(t *testing.T) {
	c := qt.New(t)

	created := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	store := &databasetest.Store{
		QueryFn: func(query string, args []driver.NamedValue) ([]string, [][]driver.Value, error) {
			return []string{"id", "created_date"}, [][]driver.Value{{int64(11), created}}, nil
		},
	}
	repo := NewPostgresRepository(store.Open())

	p := &Product{Name: "drill", Price: 79.99, Category: "tools", InStock: true}
	err := repo.Create(context.Background(), p)
	c.Assert(err, qt.IsNil)
	c.Assert(p.ID, qt.Equals, int64(11))
	c.Assert(p.CreatedDate, qt.Equals, created)

	calls := store.Calls()
	c.Assert(calls, qt.HasLen, 1)
	c.Assert(strings.Contains(calls[0].Query, "RETURNING id, created_date"), qt.IsTrue)
}

func TestGetByIDAbsentIsNotAnError(t *testing.T) {
	c := qt.New(t)

	store := &databasetest.Store{
		QueryFn: func(query string, args []driver.NamedValue) ([]string, [][]driver.Value, error) {
			return productCols, nil, nil
		},
	}
	repo := NewPostgresRepository(store.Open())

	p, err := repo.GetByID(context.Background(), 404)
	c.Assert(err, qt.IsNil)
	c.Assert(p, qt.IsNil)
}

func TestListCanceledMidQuery(t *testing.T) {
	c := qt.New(t)

	store := listStore(0, nil)
	repo := NewPostgresRepository(store.Open())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := repo.List(ctx, Filter{Page: 1, PageSize: 10})
	c.Assert(database.KindOf(err), qt.Equals, database.KindCanceled)
}
