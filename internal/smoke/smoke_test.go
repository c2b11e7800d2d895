package smoke

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/hello/internal/adapters/http/api"
	service "github.com/okian/hello/internal/app"
	"github.com/okian/hello/pkg/logger"
)

func newAPIServer() *httptest.Server {
	return httptest.NewServer(api.NewServer(service.New()).Handler(context.Background()))
}

func testConfig(url string) *Config {
	return &Config{
		BaseURL: url,
		Rounds:  2,
		Workers: 4,
		Timeout: 5 * time.Second,
	}
}

func TestRun(t *testing.T) {
	Convey("Given a running API", t, func() {
		So(logger.InitWithWriter(io.Discard), ShouldBeNil)
		srv := newAPIServer()
		defer srv.Close()

		Convey("When the smoke run executes", func() {
			stats, err := Run(context.Background(), testConfig(srv.URL))

			Convey("Then every check passes", func() {
				So(err, ShouldBeNil)
				So(stats.ChecksRun, ShouldEqual, 2*len(Checks()))
				So(stats.ChecksPassed, ShouldEqual, stats.ChecksRun)
				So(stats.ChecksFailed, ShouldEqual, 0)
				So(stats.Failures, ShouldBeEmpty)
			})
		})

		Convey("When the run is rate limited", func() {
			cfg := testConfig(srv.URL + "/")
			cfg.Rounds = 1
			cfg.RPS = 1000
			stats, err := Run(context.Background(), cfg)

			Convey("Then it still completes", func() {
				So(err, ShouldBeNil)
				So(stats.ChecksRun, ShouldEqual, len(Checks()))
			})
		})
	})
}

func TestRunStoppedEarly(t *testing.T) {
	Convey("Given a running API and a pace too slow for the deadline", t, func() {
		So(logger.InitWithWriter(io.Discard), ShouldBeNil)
		srv := newAPIServer()
		defer srv.Close()

		cfg := testConfig(srv.URL)
		cfg.Rounds = 1
		cfg.Workers = 2
		cfg.RPS = 1

		Convey("When the deadline expires before the table is done", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
			defer cancel()

			start := time.Now()
			stats, err := Run(ctx, cfg)

			Convey("Then the run is reported as interrupted", func() {
				So(errors.Is(err, ErrRunInterrupted), ShouldBeTrue)
				So(stats.ChecksRun, ShouldBeLessThan, len(Checks()))
			})

			Convey("And it does not wait out the deadline", func() {
				So(time.Since(start), ShouldBeLessThan, 1500*time.Millisecond)
			})
		})
	})

	Convey("Given a cancelled context", t, func() {
		So(logger.InitWithWriter(io.Discard), ShouldBeNil)
		srv := newAPIServer()
		defer srv.Close()

		Convey("When the checks start", func() {
			stats := &Stats{}
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			err := runChecks(ctx, testConfig(srv.URL), newHTTPClient(srv.URL, time.Second), stats)

			Convey("Then nothing runs and the run is interrupted", func() {
				So(errors.Is(err, ErrRunInterrupted), ShouldBeTrue)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(stats.ChecksRun, ShouldBeLessThan, 2*len(Checks()))
			})
		})
	})
}

func TestRunAgainstBrokenService(t *testing.T) {
	Convey("Given a service that answers health but nothing else", t, func() {
		So(logger.InitWithWriter(io.Discard), ShouldBeNil)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				_, _ = w.Write([]byte(`{"status":"healthy","timestamp":"x"}`))
				return
			}
			w.WriteHeader(http.StatusTeapot)
		}))
		defer srv.Close()

		Convey("When the smoke run executes", func() {
			stats, err := Run(context.Background(), testConfig(srv.URL))

			Convey("Then failures are reported", func() {
				So(errors.Is(err, ErrChecksFailed), ShouldBeTrue)
				So(stats.ChecksFailed, ShouldBeGreaterThan, 0)
				So(len(stats.Failures), ShouldBeLessThanOrEqualTo, maxReportedFailures)
			})
		})
	})

	Convey("Given an unhealthy service", t, func() {
		So(logger.InitWithWriter(io.Discard), ShouldBeNil)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		Convey("When the smoke run executes", func() {
			_, err := Run(context.Background(), testConfig(srv.URL))

			Convey("Then it stops at the health check", func() {
				So(errors.Is(err, ErrUnhealthy), ShouldBeTrue)
			})
		})
	})
}

func TestRunValidation(t *testing.T) {
	Convey("Given invalid configurations", t, func() {
		valid := testConfig("http://localhost:1")
		cases := []func(c *Config){
			func(c *Config) { c.BaseURL = "" },
			func(c *Config) { c.Rounds = 0 },
			func(c *Config) { c.Workers = 0 },
			func(c *Config) { c.RPS = -1 },
			func(c *Config) { c.Timeout = 0 },
		}

		Convey("Then each is rejected before any request", func() {
			for _, mutate := range cases {
				c := *valid
				mutate(&c)
				_, err := Run(context.Background(), &c)
				So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
			}
			_, err := Run(context.Background(), nil)
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})
	})
}

func TestCheckVerify(t *testing.T) {
	Convey("Given a JSON check", t, func() {
		c := Check{Name: "x", WantStatus: StatusOK, WantJSON: `{"a":1,"b":"c"}`}

		Convey("Then key order and whitespace do not matter", func() {
			So(c.Verify(StatusOK, []byte(`{ "b":"c", "a":1 }`)), ShouldBeNil)
		})

		Convey("Then a different status fails", func() {
			So(errors.Is(c.Verify(StatusBadRequest, []byte(`{"a":1,"b":"c"}`)), ErrUnexpectedBody), ShouldBeTrue)
		})

		Convey("Then a different value fails", func() {
			So(errors.Is(c.Verify(StatusOK, []byte(`{"a":2,"b":"c"}`)), ErrUnexpectedBody), ShouldBeTrue)
		})

		Convey("Then a non JSON body fails", func() {
			So(errors.Is(c.Verify(StatusOK, []byte(`nope`)), ErrUnexpectedBody), ShouldBeTrue)
		})
	})

	Convey("Given text and key checks", t, func() {
		text := Check{WantStatus: StatusOK, WantText: "hi"}
		keys := Check{WantStatus: StatusOK, WantKeys: []string{"status"}}

		So(text.Verify(StatusOK, []byte("hi")), ShouldBeNil)
		So(text.Verify(StatusOK, []byte("hi\n")), ShouldNotBeNil)
		So(keys.Verify(StatusOK, []byte(`{"status":"ok"}`)), ShouldBeNil)
		So(keys.Verify(StatusOK, []byte(`{"other":1}`)), ShouldNotBeNil)
	})

	Convey("Given the contract table", t, func() {
		Convey("Then every check has valid expectations", func() {
			for _, c := range Checks() {
				So(c.Name, ShouldNotBeEmpty)
				So(c.WantStatus, ShouldBeGreaterThan, 0)
				if c.WantJSON != "" {
					So(c.Verify(c.WantStatus, []byte(c.WantJSON)), ShouldBeNil)
				}
			}
		})
	})
}

func TestCLI(t *testing.T) {
	Convey("Given the help text", t, func() {
		var buf bytes.Buffer
		ShowHelp(&buf)

		Convey("Then every flag is documented", func() {
			for _, flag := range []string{"-url", "-rounds", "-workers", "-rps", "-timeout", "-log", "-verbose", "-help"} {
				So(buf.String(), ShouldContainSubstring, flag)
			}
		})
	})

	Convey("Given a log file path", t, func() {
		path := filepath.Join(t.TempDir(), "smoke.log")

		Convey("When logging is set up", func() {
			got, err := SetupLogging(path, true)
			So(err, ShouldBeNil)
			defer func() { _ = logger.SetLevelString("info") }()

			Convey("Then log lines reach the file", func() {
				So(got, ShouldEqual, path)
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "logging to file")
			})
		})

		Convey("When the directory does not exist", func() {
			_, err := SetupLogging(filepath.Join(t.TempDir(), "missing", "smoke.log"), false)

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
