package api

import (
	"net/http"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestErrorClassification(t *testing.T) {
	convey.Convey("Given HTTP error statuses", t, func() {
		convey.Convey("Then each maps to an error type the service can produce", func() {
			cases := map[int]string{
				http.StatusBadRequest:            "client_error",
				http.StatusNotFound:              "not_found",
				http.StatusRequestEntityTooLarge: "payload_too_large",
				http.StatusTooManyRequests:       "client_error",
				http.StatusInternalServerError:   "server_error",
				http.StatusOK:                    "unknown",
			}
			for status, want := range cases {
				convey.So(getErrorType(status), convey.ShouldEqual, want)
			}
		})

		convey.Convey("Then severity follows the status class", func() {
			convey.So(getErrorSeverity(http.StatusInternalServerError), convey.ShouldEqual, "high")
			convey.So(getErrorSeverity(http.StatusBadRequest), convey.ShouldEqual, "medium")
			convey.So(getErrorSeverity(http.StatusOK), convey.ShouldEqual, "low")
		})
	})
}
