package calc_test

import (
	"math"
	"testing"

	"github.com/okian/hello/internal/domain/calc"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCalculate(t *testing.T) {
	Convey("Given the calculator", t, func() {
		Convey("When applying each supported operation", func() {
			cases := []struct {
				a, b float64
				op   string
				want float64
			}{
				{5, 3, calc.OpAdd, 8},
				{10, 4, calc.OpSubtract, 6},
				{6, 7, calc.OpMultiply, 42},
				{20, 5, calc.OpDivide, 4},
				{0, 5, calc.OpAdd, 5},
				{-2.5, 0.5, calc.OpMultiply, -1.25},
				{1, 3, calc.OpDivide, 1.0 / 3.0},
			}

			Convey("Then it should return the exact arithmetic result", func() {
				for _, tc := range cases {
					got, err := calc.Calculate(tc.a, tc.b, tc.op)
					So(err, ShouldBeNil)
					So(got, ShouldEqual, tc.want)
				}
			})
		})

		Convey("When adding 0.1 and 0.2", func() {
			got, err := calc.Calculate(0.1, 0.2, calc.OpAdd)

			Convey("Then it should keep double precision without rounding", func() {
				So(err, ShouldBeNil)
				So(got, ShouldEqual, 0.30000000000000004)
			})
		})

		Convey("When the result overflows", func() {
			got, err := calc.Calculate(math.MaxFloat64, 10, calc.OpMultiply)

			Convey("Then it should be +Inf", func() {
				So(err, ShouldBeNil)
				So(math.IsInf(got, 1), ShouldBeTrue)
			})
		})

		Convey("When dividing by zero", func() {
			Convey("Then it should fail regardless of a", func() {
				for _, a := range []float64{10, 0, -3, math.Inf(1)} {
					_, err := calc.Calculate(a, 0, calc.OpDivide)
					So(err, ShouldEqual, calc.ErrDivideByZero)
				}
				_, err := calc.Calculate(1, math.Copysign(0, -1), calc.OpDivide)
				So(err, ShouldEqual, calc.ErrDivideByZero)
			})
		})

		Convey("When the operation is unknown", func() {
			Convey("Then it should fail with ErrInvalidOperation", func() {
				for _, op := range []string{"modulo", "", "ADD", " add"} {
					_, err := calc.Calculate(5, 3, op)
					So(err, ShouldEqual, calc.ErrInvalidOperation)
				}
			})
		})

		Convey("When listing operations", func() {
			Convey("Then they should be in documentation order", func() {
				So(calc.Operations(), ShouldResemble, []string{"add", "subtract", "multiply", "divide"})
			})
		})
	})
}
