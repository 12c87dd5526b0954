package session

import (
	"atlas-maple2/inventory"
	"atlas-maple2/item"
	"atlas-maple2/rest"
	"atlas-maple2/tab"
	"cmp"
	"context"
	"net/http"
	"slices"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/Chronicle20/atlas-rest/server"
	tenant "github.com/Chronicle20/atlas-tenant"
	"github.com/gorilla/mux"
	"github.com/jtumidanski/api2go/jsonapi"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func InitResource(si jsonapi.ServerInformation) func(db *gorm.DB) server.RouteInitializer {
	return func(db *gorm.DB) server.RouteInitializer {
		return func(router *mux.Router, l logrus.FieldLogger) {
			registerGet := rest.RegisterHandler(l)(si)
			r := router.PathPrefix("/characters/{characterId}/inventory").Subrouter()
			r.HandleFunc("/tabs/{tab}", registerGet("get_inventory_tab", handleGetTab(db))).Methods(http.MethodGet)
		}
	}
}

// tabItems reads a tab from the live session when the character has one,
// otherwise from the stored snapshot. A session which is shutting down is
// waited on until its inventory has been stored.
func tabItems(l logrus.FieldLogger, ctx context.Context, db *gorm.DB, characterId uint32, tt tab.Type) ([]item.Model, error) {
	if s, ok := GetRegistry().Get(tenant.MustFromContext(ctx), characterId); ok {
		ms, err := Query(s, func(p *inventory.Processor) []item.Model {
			return p.Inventory().Items(tt)
		})
		if err == nil {
			return ms, nil
		}
		l.WithError(err).Debugf("Session of character [%d] closed, reading stored inventory.", characterId)
		select {
		case <-s.Released():
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	ms, err := item.NewProcessor(l, ctx, db).GetByCharacterId(characterId)
	if err != nil {
		return nil, err
	}
	results := make([]item.Model, 0)
	for _, m := range ms {
		if m.Tab() == tt {
			results = append(results, m)
		}
	}
	slices.SortFunc(results, func(a, b item.Model) int {
		return cmp.Compare(a.Slot(), b.Slot())
	})
	return results, nil
}

func handleGetTab(db *gorm.DB) rest.GetHandler {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext) http.HandlerFunc {
		return rest.ParseCharacterId(d.Logger(), func(characterId uint32) http.HandlerFunc {
			return rest.ParseTab(d.Logger(), func(tt tab.Type) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					ms, err := tabItems(d.Logger(), d.Context(), db, characterId, tt)
					if err != nil {
						d.Logger().WithError(err).Errorf("Unable to read tab [%s] of character [%d].", tt, characterId)
						w.WriteHeader(http.StatusInternalServerError)
						return
					}

					rm, err := model.SliceMap(item.Transform)(model.FixedProvider(ms))()()
					if err != nil {
						d.Logger().WithError(err).Errorf("Creating REST model.")
						w.WriteHeader(http.StatusInternalServerError)
						return
					}

					query := r.URL.Query()
					queryParams := jsonapi.ParseQueryFields(&query)
					server.MarshalResponse[[]item.RestModel](d.Logger())(w)(c.ServerInformation())(queryParams)(rm)
				}
			})
		})
	}
}
