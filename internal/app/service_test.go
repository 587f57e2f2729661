package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/podiumlab/podium/internal/app"
	"github.com/podiumlab/podium/internal/render"
	"github.com/podiumlab/podium/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

// csvServer serves per-path CSV bodies and records requested paths.
type csvServer struct {
	mu     sync.Mutex
	bodies map[string]string
	fail   bool
	paths  []string
	srv    *httptest.Server
}

func newCSVServer(bodies map[string]string) *csvServer {
	s := &csvServer{bodies: bodies}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.paths = append(s.paths, r.URL.Path)
		fail := s.fail
		body := s.bodies[r.URL.Path]
		s.mu.Unlock()
		if fail {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	return s
}

func (s *csvServer) setFail(fail bool) {
	s.mu.Lock()
	s.fail = fail
	s.mu.Unlock()
}

func (s *csvServer) requested() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

const singleCSV = `team,model,overall,biomedical,runtime,date,paper_url
Alpha,gpt-4o,90,88,1.0,2024-01-01,http://x
Beta,claude-3,80,82,2.5,2024-02-15,http://y
`

const dualStandardCSV = `System,Models,Overall
Argo,m1,70
Borealis,m2,65
`

const dualOracleCSV = `System,Models,Overall
Argo,m1,95
Borealis,m2,91
`

func startSingle(t *testing.T, s *csvServer, opts ...service.Option) *service.Service {
	t.Helper()
	opts = append([]service.Option{
		service.WithSources(s.srv.URL+"/leaderboard.csv", ""),
		service.WithRefreshInterval(time.Hour),
		service.WithDebounceDelay(20 * time.Millisecond),
	}, opts...)
	svc := service.New(opts...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func TestServiceLoadAndView(t *testing.T) {
	Convey("Given a service over a single-file source", t, func() {
		s := newCSVServer(map[string]string{"/leaderboard.csv": singleCSV})
		defer s.srv.Close()
		svc := startSingle(t, s)
		defer svc.Stop()
		ctx := context.Background()

		Convey("Then the initial load renders the dataset", func() {
			v := svc.View(ctx)
			So(v.Heading, ShouldEqual, render.HeadingStandard)
			So(v.RowCount, ShouldEqual, 2)
			So(string(v.Table), ShouldContainSubstring, "Alpha")
		})

		Convey("When a reload fails", func() {
			s.setFail(true)
			svc.Reload(ctx)

			Convey("Then the view shows the error while the dataset stays intact", func() {
				v := svc.View(ctx)
				So(v.Message, ShouldContainSubstring, "500")
				So(svc.GetStats()["rows"], ShouldEqual, 2)
			})

			Convey("And a later successful reload recovers", func() {
				s.setFail(false)
				svc.Reload(ctx)
				v := svc.View(ctx)
				So(v.Message, ShouldEqual, "")
				So(v.RowCount, ShouldEqual, 2)
			})
		})

		Convey("When switching domains", func() {
			svc.ApplySearch(ctx, "alpha")
			v, err := svc.SetDomain(ctx, "Biomedical")

			Convey("Then the column changes and the search term persists", func() {
				So(err, ShouldBeNil)
				So(v.Domain, ShouldEqual, "Biomedical")
				So(v.Term, ShouldEqual, "alpha")
				So(string(v.Table), ShouldContainSubstring, "88.0%")
			})
		})

		Convey("When switching to an unknown domain", func() {
			_, err := svc.SetDomain(ctx, "Astrology")

			Convey("Then the service rejects it", func() {
				So(err, ShouldEqual, service.ErrUnknownDomain)
			})
		})

		Convey("When toggling oracle without an oracle source", func() {
			_, err := svc.SetOracle(ctx, true)

			Convey("Then the toggle is unavailable", func() {
				So(err, ShouldEqual, service.ErrOracleUnavailable)
			})
		})
	})
}

func TestServiceSearch(t *testing.T) {
	Convey("Given a loaded service", t, func() {
		s := newCSVServer(map[string]string{"/leaderboard.csv": singleCSV})
		defer s.srv.Close()
		svc := startSingle(t, s)
		defer svc.Stop()
		ctx := context.Background()

		Convey("When applying a search immediately", func() {
			v := svc.ApplySearch(ctx, "beta")

			Convey("Then the view narrows with the rank preserved", func() {
				So(v.Term, ShouldEqual, "beta")
				So(v.RowCount, ShouldEqual, 1)
				So(string(v.Table), ShouldContainSubstring, `<td class="rank">2</td>`)
			})
		})

		Convey("When queueing a debounced search", func() {
			svc.QueueSearch("beta")

			Convey("Then the term applies only after the delay", func() {
				So(svc.View(ctx).Term, ShouldEqual, "")
				time.Sleep(80 * time.Millisecond)
				So(svc.View(ctx).Term, ShouldEqual, "beta")
			})
		})

		Convey("When keystrokes arrive in quick succession", func() {
			svc.QueueSearch("b")
			svc.QueueSearch("be")
			svc.QueueSearch("bet")
			time.Sleep(80 * time.Millisecond)

			Convey("Then only the latest term fires", func() {
				So(svc.View(ctx).Term, ShouldEqual, "bet")
			})
		})

		Convey("When clearing the search", func() {
			svc.ApplySearch(ctx, "beta")
			svc.QueueSearch("gamma")
			v := svc.ClearSearch(ctx)

			Convey("Then the term resets and the pending search never fires", func() {
				So(v.Term, ShouldEqual, "")
				So(v.RowCount, ShouldEqual, 2)
				time.Sleep(80 * time.Millisecond)
				So(svc.View(ctx).Term, ShouldEqual, "")
			})
		})
	})
}

func TestServiceOracle(t *testing.T) {
	Convey("Given a service with a standard/oracle source pair", t, func() {
		s := newCSVServer(map[string]string{
			"/leaderboard.csv":        dualStandardCSV,
			"/leaderboard_oracle.csv": dualOracleCSV,
		})
		defer s.srv.Close()
		svc := service.New(
			service.WithSources(s.srv.URL+"/leaderboard.csv", s.srv.URL+"/leaderboard_oracle.csv"),
			service.WithRefreshInterval(time.Hour),
			service.WithDebounceDelay(20*time.Millisecond),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		ctx := context.Background()

		Convey("Then the initial load uses the standard resource", func() {
			So(s.requested(), ShouldResemble, []string{"/leaderboard.csv"})
			v := svc.View(ctx)
			So(string(v.Table), ShouldContainSubstring, "70.0%")
		})

		Convey("When flipping to oracle mode", func() {
			v, err := svc.SetOracle(ctx, true)

			Convey("Then the alternate resource is fetched and the heading swaps", func() {
				So(err, ShouldBeNil)
				paths := s.requested()
				So(paths[len(paths)-1], ShouldEqual, "/leaderboard_oracle.csv")
				So(v.Heading, ShouldEqual, render.HeadingOracle)
				So(string(v.Table), ShouldContainSubstring, "95.0%")
			})

			Convey("And flipping back reloads the standard resource", func() {
				v, err := svc.SetOracle(ctx, false)
				So(err, ShouldBeNil)
				paths := s.requested()
				So(paths[len(paths)-1], ShouldEqual, "/leaderboard.csv")
				So(v.Heading, ShouldEqual, render.HeadingStandard)
			})

			Convey("And setting the same mode again does not reload", func() {
				before := len(s.requested())
				_, err := svc.SetOracle(ctx, true)
				So(err, ShouldBeNil)
				So(len(s.requested()), ShouldEqual, before)
			})
		})

		Convey("Then the dual schema drives the view columns", func() {
			v := svc.View(ctx)
			So(v.Columns, ShouldResemble, []string{"Rank", "System", "Models", "Overall"})
		})
	})
}

func TestServiceRefreshLoop(t *testing.T) {
	Convey("Given a service with a short refresh interval", t, func() {
		s := newCSVServer(map[string]string{"/leaderboard.csv": singleCSV})
		defer s.srv.Close()
		svc := service.New(
			service.WithSources(s.srv.URL+"/leaderboard.csv", ""),
			service.WithRefreshInterval(30*time.Millisecond),
			service.WithDebounceDelay(20*time.Millisecond),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("Then the loader is re-invoked periodically", func() {
			time.Sleep(100 * time.Millisecond)
			So(len(s.requested()), ShouldBeGreaterThan, 1)
		})
	})
}
