package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/podiumlab/podium/internal/adapters/http/api"
	service "github.com/podiumlab/podium/internal/app"
	"github.com/podiumlab/podium/internal/render"
)

// mockDeps records control calls and hands back canned views.
type mockDeps struct {
	view         render.View
	domainErr    error
	oracleErr    error
	queued       []string
	applied      []string
	cleared      int
	reloads      int
	setDomains   []string
	oracleStates []bool
}

func (m *mockDeps) View(_ context.Context) render.View { return m.view }

func (m *mockDeps) SetDomain(_ context.Context, label string) (render.View, error) {
	if m.domainErr != nil {
		return m.view, m.domainErr
	}
	m.setDomains = append(m.setDomains, label)
	v := m.view
	v.Domain = label
	return v, nil
}

func (m *mockDeps) ApplySearch(_ context.Context, term string) render.View {
	m.applied = append(m.applied, term)
	v := m.view
	v.Term = term
	return v
}

func (m *mockDeps) QueueSearch(term string) { m.queued = append(m.queued, term) }

func (m *mockDeps) ClearSearch(_ context.Context) render.View {
	m.cleared++
	return m.view
}

func (m *mockDeps) SetOracle(_ context.Context, on bool) (render.View, error) {
	if m.oracleErr != nil {
		return m.view, m.oracleErr
	}
	m.oracleStates = append(m.oracleStates, on)
	v := m.view
	v.Oracle = on
	return v, nil
}

func (m *mockDeps) Reload(_ context.Context) { m.reloads++ }

type mockStats struct{}

func (mockStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newMux(deps *mockDeps) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, mockStats{}).Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestViewEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDeps{view: render.View{Heading: render.HeadingStandard, Domain: "Overall"}}
		mux := newMux(deps)

		Convey("When fetching the current view", func() {
			w := do(mux, http.MethodGet, "/api/view")

			Convey("Then the view is returned as JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var v render.View
				So(json.Unmarshal(w.Body.Bytes(), &v), ShouldBeNil)
				So(v.Heading, ShouldEqual, render.HeadingStandard)
			})
		})

		Convey("When using the wrong method", func() {
			w := do(mux, http.MethodPost, "/api/view")

			Convey("Then the route is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestDomainEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDeps{view: render.View{Domain: "Overall"}}
		mux := newMux(deps)

		Convey("When switching domains", func() {
			w := do(mux, http.MethodPost, "/api/domain?name=Legal")

			Convey("Then the dependency is invoked and the new view returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.setDomains, ShouldResemble, []string{"Legal"})
				var v render.View
				So(json.Unmarshal(w.Body.Bytes(), &v), ShouldBeNil)
				So(v.Domain, ShouldEqual, "Legal")
			})
		})

		Convey("When the name is missing", func() {
			w := do(mux, http.MethodPost, "/api/domain")

			Convey("Then the request is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the domain is unknown", func() {
			deps.domainErr = service.ErrUnknownDomain
			w := do(mux, http.MethodPost, "/api/domain?name=Astrology")

			Convey("Then a 400 with the domain code is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "unknown_domain")
			})
		})
	})
}

func TestSearchEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDeps{}
		mux := newMux(deps)

		Convey("When posting a keystroke search", func() {
			w := do(mux, http.MethodPost, "/api/search?q=alp")

			Convey("Then the term is queued and the current view returned", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
				So(deps.queued, ShouldResemble, []string{"alp"})
				So(deps.applied, ShouldBeEmpty)
			})
		})

		Convey("When posting an immediate search", func() {
			w := do(mux, http.MethodPost, "/api/search?q=alpha&now=1")

			Convey("Then the term applies at once", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.applied, ShouldResemble, []string{"alpha"})
				So(deps.queued, ShouldBeEmpty)
			})
		})

		Convey("When clearing the search", func() {
			w := do(mux, http.MethodPost, "/api/search?clear=1")

			Convey("Then the pending search is dropped", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.cleared, ShouldEqual, 1)
			})
		})
	})
}

func TestOracleEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDeps{}
		mux := newMux(deps)

		Convey("When flipping oracle mode on", func() {
			w := do(mux, http.MethodPost, "/api/oracle?on=true")

			Convey("Then the dependency receives the flag", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.oracleStates, ShouldResemble, []bool{true})
			})
		})

		Convey("When the flag is unparsable", func() {
			w := do(mux, http.MethodPost, "/api/oracle?on=maybe")

			Convey("Then the request is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When oracle mode is not configured", func() {
			deps.oracleErr = service.ErrOracleUnavailable
			w := do(mux, http.MethodPost, "/api/oracle?on=true")

			Convey("Then a conflict is reported", func() {
				So(w.Code, ShouldEqual, http.StatusConflict)
				So(w.Body.String(), ShouldContainSubstring, "oracle_unavailable")
			})
		})
	})
}

func TestReloadStatsHealth(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDeps{}
		mux := newMux(deps)

		Convey("When forcing a reload", func() {
			w := do(mux, http.MethodPost, "/api/reload")

			Convey("Then the loader runs once", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.reloads, ShouldEqual, 1)
			})
		})

		Convey("When fetching stats", func() {
			w := do(mux, http.MethodGet, "/stats")

			Convey("Then the stats object is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "started")
			})
		})

		Convey("When scraping health metrics", func() {
			w := do(mux, http.MethodGet, "/healthz")

			Convey("Then the endpoint responds", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}
