package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/katalvlaran/lvsolve/rootfind"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatVec(v []float64) string {
	return "[" + strings.Join(lo.Map(v, func(x float64, _ int) string { return formatFloat(x) }), " ") + "]"
}

// render prints a scalar result and, when trace is set, its iteration table.
func render(w io.Writer, m rootfind.Method, res *rootfind.Result, trace bool) error {
	fmt.Fprintf(w, "method:     %s\n", m)
	fmt.Fprintf(w, "root:       %s\n", formatFloat(res.X))
	fmt.Fprintf(w, "residual:   %s\n", formatFloat(res.Residual))
	if m == rootfind.MethodBisect || m == rootfind.MethodRegulaFalsi {
		fmt.Fprintf(w, "width:      %s\n", formatFloat(res.Width))
	}
	fmt.Fprintf(w, "status:     %s\n", res.Status)
	fmt.Fprintf(w, "iterations: %d\n", res.Iterations)
	if !trace {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "x", "f(x)")
	rows := lo.Map(res.Xs, func(x float64, i int) []string {
		return []string{strconv.Itoa(i), formatFloat(x), formatFloat(res.FVals[i])}
	})
	if err := table.Bulk(rows); err != nil {
		return errors.Trace(err)
	}

	return errors.Trace(table.Render())
}

// renderSystem prints a Newton system result and, when trace is set, its
// iteration table with the accepted step scales.
func renderSystem(w io.Writer, m rootfind.Method, res *rootfind.SystemResult, trace bool) error {
	fmt.Fprintf(w, "method:     %s\n", m)
	fmt.Fprintf(w, "root:       %s\n", formatVec(res.X))
	fmt.Fprintf(w, "residual:   %s\n", formatFloat(res.Residual))
	fmt.Fprintf(w, "status:     %s\n", res.Status)
	fmt.Fprintf(w, "iterations: %d\n", res.Iterations)
	if !trace {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "x", "F(x)", "scale")
	rows := lo.Map(res.Xs, func(x []float64, i int) []string {
		scale := "-"
		if i > 0 {
			scale = formatFloat(res.Scales[i-1])
		}

		return []string{strconv.Itoa(i), formatVec(x), formatVec(res.FVals[i]), scale}
	})
	if err := table.Bulk(rows); err != nil {
		return errors.Trace(err)
	}

	return errors.Trace(table.Render())
}
