package main

import (
	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvsolve/internal/log"
	"github.com/katalvlaran/lvsolve/internal/oracle"
	"github.com/katalvlaran/lvsolve/rootfind"
)

// newRootCommand builds the command tree. A fresh tree per call keeps flag
// state out of package globals.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "rootfind",
		Short:         "Solve f(x) = 0 with bisection, secant, regula falsi or Newton's method.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			log.SetLogger(cmd.Flags(), v.GetBool(keyDebug))

			return nil
		},
	}
	log.AddFlags(root.PersistentFlags())
	root.PersistentFlags().Bool(keyDebug, false, "log every iteration at debug level")
	root.PersistentFlags().Bool(keyTrace, false, "print the iteration trace as a table")
	root.PersistentFlags().StringP(keyConfig, "c", "", "configuration file path (yaml, toml or json)")
	root.PersistentFlags().Float64(keyEps, 1e-8, "convergence tolerance (> 0)")
	root.PersistentFlags().Int(keyMaxIter, 0, "iteration budget (0 = method default)")

	root.AddCommand(newBracketCommand(rootfind.MethodBisect, "Bisection on a sign-changing bracket [a, b].", rootfind.Bisect))
	root.AddCommand(newBracketCommand(rootfind.MethodRegulaFalsi, "False position on a sign-changing bracket [a, b].", rootfind.RegulaFalsi))
	root.AddCommand(newSecantCommand())
	root.AddCommand(newNewtonCommand())

	return root
}

// scalarSolver is the shared shape of Bisect, Secant and RegulaFalsi.
type scalarSolver func(f rootfind.Func, u, v, eps float64, opts ...rootfind.Option) (*rootfind.Result, error)

func newBracketCommand(m rootfind.Method, short string, solve scalarSolver) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(m),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			return runScalar(cmd, v, m, solve, v.GetFloat64(keyA), v.GetFloat64(keyB))
		},
	}
	cmd.Flags().String(keyF, "", "expression in x, e.g. \"x**2 - 2\"")
	cmd.Flags().Float64(keyA, 0, "left end of the bracket")
	cmd.Flags().Float64(keyB, 1, "right end of the bracket")

	return cmd
}

func newSecantCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(rootfind.MethodSecant),
		Short: "Derivative-free secant iteration from two starting points.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			return runScalar(cmd, v, rootfind.MethodSecant, rootfind.Secant, v.GetFloat64(keyX0), v.GetFloat64(keyX1))
		},
	}
	cmd.Flags().String(keyF, "", "expression in x, e.g. \"x**2 - 2\"")
	cmd.Flags().Float64(keyX0, 0, "first starting point")
	cmd.Flags().Float64(keyX1, 1, "second starting point")

	return cmd
}

// runScalar compiles --f, runs solve on (u, v) and prints the outcome.
func runScalar(cmd *cobra.Command, v *viper.Viper, m rootfind.Method, solve scalarSolver, u, w float64) error {
	src, err := requireString(v, keyF)
	if err != nil {
		return err
	}
	f, err := oracle.CompileScalar(src)
	if err != nil {
		return errors.Trace(err)
	}
	opts, err := solverOptions(v)
	if err != nil {
		return err
	}

	log.Logger().Debug("solve", zap.String("method", string(m)), zap.String("f", src),
		zap.Float64("u", u), zap.Float64("v", w), zap.Float64("eps", v.GetFloat64(keyEps)))
	res, err := solve(f.Func(), u, w, v.GetFloat64(keyEps), opts...)
	if err != nil {
		return explain(err, f)
	}

	return render(cmd.OutOrStdout(), m, res, v.GetBool(keyTrace))
}

func newNewtonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(rootfind.MethodNewton),
		Short: "Newton's method for one unknown (--df) or a square system (--jac).",
		Long: `Newton's method. With --df, f and df are scalar expressions in x and --x0 is
a number. With --jac, f is an array expression in the vector x, jac an array
of Jacobian rows and --x0 an array literal such as "[1, 1]".
--guarded halves each step until the residual norm decreases.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if v.GetString(keyJac) != "" {
				return runSystem(cmd, v)
			}

			return runNewtonScalar(cmd, v)
		},
	}
	cmd.Flags().String(keyF, "", "residual expression: scalar in x, or an array in x[0..n-1]")
	cmd.Flags().String(keyDF, "", "derivative expression in x (scalar mode)")
	cmd.Flags().String(keyJac, "", "Jacobian as an array of rows (system mode)")
	cmd.Flags().String(keyX0, "0", "starting point: a number, or an array literal in system mode")
	cmd.Flags().Bool(keyGuarded, false, "use step halving (guarded Newton)")

	return cmd
}

func newtonMethod(v *viper.Viper) rootfind.Method {
	if v.GetBool(keyGuarded) {
		return rootfind.MethodGuardedNewton
	}

	return rootfind.MethodNewton
}

func runNewtonScalar(cmd *cobra.Command, v *viper.Viper) error {
	fSrc, err := requireString(v, keyF)
	if err != nil {
		return err
	}
	dfSrc, err := requireString(v, keyDF)
	if err != nil {
		return errors.Annotate(err, "scalar mode needs --df (or pass --jac for a system)")
	}
	f, err := oracle.CompileScalar(fSrc)
	if err != nil {
		return errors.Trace(err)
	}
	df, err := oracle.CompileScalar(dfSrc)
	if err != nil {
		return errors.Trace(err)
	}
	x0, err := oracle.ParseVector(v.GetString(keyX0))
	if err != nil {
		return errors.Trace(err)
	}
	if len(x0) != 1 {
		return errors.NotValidf("scalar --x0 %v", x0)
	}
	opts, err := solverOptions(v)
	if err != nil {
		return err
	}

	m := newtonMethod(v)
	solve := rootfind.NewtonScalar
	if m == rootfind.MethodGuardedNewton {
		solve = rootfind.GuardedNewtonScalar
	}
	log.Logger().Debug("solve", zap.String("method", string(m)), zap.String("f", fSrc), zap.String("df", dfSrc),
		zap.Float64("x0", x0[0]))
	res, err := solve(f.Func(), df.Func(), x0[0], v.GetFloat64(keyEps), opts...)
	if err != nil {
		return explain(err, f, df)
	}

	return render(cmd.OutOrStdout(), m, res, v.GetBool(keyTrace))
}

func runSystem(cmd *cobra.Command, v *viper.Viper) error {
	fSrc, err := requireString(v, keyF)
	if err != nil {
		return err
	}
	f, err := oracle.CompileVector(fSrc)
	if err != nil {
		return errors.Trace(err)
	}
	jac, err := oracle.CompileVector(v.GetString(keyJac))
	if err != nil {
		return errors.Trace(err)
	}
	x0, err := oracle.ParseVector(v.GetString(keyX0))
	if err != nil {
		return errors.Trace(err)
	}
	opts, err := solverOptions(v)
	if err != nil {
		return err
	}

	m := newtonMethod(v)
	solve := rootfind.Newton
	if m == rootfind.MethodGuardedNewton {
		solve = rootfind.GuardedNewton
	}
	log.Logger().Debug("solve", zap.String("method", string(m)), zap.String("f", fSrc),
		zap.String("jac", jac.Source()), zap.Float64s("x0", x0))
	res, err := solve(f.VecFunc(), rootfind.MatrixSolve(jac.JacobianFunc()), x0, v.GetFloat64(keyEps), opts...)
	if err != nil {
		return explain(err, f, jac)
	}

	return renderSystem(cmd.OutOrStdout(), m, res, v.GetBool(keyTrace))
}

// explain annotates a solver error with the first expression failure behind
// it, if any. The solver error already names the method.
func explain(err error, oracles ...*oracle.Oracle) error {
	for _, o := range oracles {
		if oErr := o.Err(); oErr != nil {
			return errors.Annotatef(err, "%v", oErr)
		}
	}

	return errors.Trace(err)
}
