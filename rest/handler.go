package rest

import (
	"atlas-maple2/tab"
	"context"
	"errors"
	"net/http"
	"strconv"

	tenant "github.com/Chronicle20/atlas-tenant"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jtumidanski/api2go/jsonapi"
	"github.com/sirupsen/logrus"
)

const (
	TenantIdHeader     = "TENANT_ID"
	RegionHeader       = "REGION"
	MajorVersionHeader = "MAJOR_VERSION"
	MinorVersionHeader = "MINOR_VERSION"
)

type HandlerDependency struct {
	l   logrus.FieldLogger
	ctx context.Context
}

func (h HandlerDependency) Logger() logrus.FieldLogger {
	return h.l
}

func (h HandlerDependency) Context() context.Context {
	return h.ctx
}

type HandlerContext struct {
	si jsonapi.ServerInformation
}

func (h HandlerContext) ServerInformation() jsonapi.ServerInformation {
	return h.si
}

type GetHandler func(d *HandlerDependency, c *HandlerContext) http.HandlerFunc

// RegisterHandler resolves the tenant of each request from its headers and
// hands the handler a request scoped logger and context.
func RegisterHandler(l logrus.FieldLogger) func(si jsonapi.ServerInformation) func(handlerName string, handler GetHandler) http.HandlerFunc {
	return func(si jsonapi.ServerInformation) func(handlerName string, handler GetHandler) http.HandlerFunc {
		return func(handlerName string, handler GetHandler) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				fl := l.WithField("handler", handlerName)
				t, err := ParseTenant(r.Header)
				if err != nil {
					fl.WithError(err).Errorf("Unable to identify tenant of request.")
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				ctx := tenant.WithContext(r.Context(), t)
				fl = fl.WithField("tenant", t.Id().String())
				handler(&HandlerDependency{l: fl, ctx: ctx}, &HandlerContext{si: si})(w, r)
			}
		}
	}
}

func ParseTenant(h http.Header) (tenant.Model, error) {
	id, err := uuid.Parse(h.Get(TenantIdHeader))
	if err != nil {
		return tenant.Model{}, err
	}
	major, err := strconv.ParseUint(h.Get(MajorVersionHeader), 10, 16)
	if err != nil {
		return tenant.Model{}, err
	}
	minor, err := strconv.ParseUint(h.Get(MinorVersionHeader), 10, 16)
	if err != nil {
		return tenant.Model{}, err
	}
	return tenant.Create(id, h.Get(RegionHeader), uint16(major), uint16(minor))
}

type CharacterIdHandler func(characterId uint32) http.HandlerFunc

func ParseCharacterId(l logrus.FieldLogger, next CharacterIdHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterId, err := strconv.ParseUint(mux.Vars(r)["characterId"], 10, 32)
		if err == nil && characterId == 0 {
			err = errors.New("character id must be positive")
		}
		if err != nil {
			l.WithError(err).Errorf("Unable to properly parse characterId from path.")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		next(uint32(characterId))(w, r)
	}
}

type TabHandler func(t tab.Type) http.HandlerFunc

// ParseTab accepts either the tab name or its numeric value.
func ParseTab(l logrus.FieldLogger, next TabHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := mux.Vars(r)["tab"]
		if t, ok := tab.FromName(v); ok {
			next(t)(w, r)
			return
		}
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil || !tab.Valid(tab.Type(n)) {
			l.Errorf("Unable to properly parse tab [%s] from path.", v)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		next(tab.Type(n))(w, r)
	}
}
