package main

import (
	"fmt"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"p224.mleku.dev"
)

// config holds the settings shared by every subcommand
type config struct {
	seed string
	base int
	hex  bool
}

func loadConfig() (config, error) {
	c := config{
		seed: viper.GetString("seed"),
		base: viper.GetInt("base"),
		hex:  viper.GetBool("hex"),
	}
	if c.base != 0 && c.base != 10 && c.base != 16 {
		return c, errors.Errorf("unsupported base %d", c.base)
	}
	return c, nil
}

func (c config) source() p224.Source {
	if c.seed == "" {
		return p224.DefaultSource()
	}
	return p224.NewHashSource([]byte(c.seed))
}

// parseElement reads an operand in the configured base and validates it
// against the field modulus
func (c config) parseElement(f *p224.Field, s string) (*p224.FieldElement, error) {
	n, ok := new(big.Int).SetString(s, c.base)
	if !ok {
		return nil, errors.Errorf("cannot parse %q as an integer", s)
	}
	e, err := p224.NewFieldElement(f, n)
	if err != nil {
		return nil, errors.WithMessagef(err, "operand %q", s)
	}
	return e, nil
}

func (c config) format(e *p224.FieldElement) string {
	if c.hex {
		return fmt.Sprintf("0x%s", e)
	}
	return e.ToBig().String()
}

type unaryOp func(c config, x *p224.FieldElement) *p224.FieldElement

type binaryOp func(x, y *p224.FieldElement) *p224.FieldElement

func commands() []*cobra.Command {
	unary := []struct {
		use, short string
		op         unaryOp
	}{
		{"sqrt", "Print a square root, or \"none\" for a non-residue", func(c config, x *p224.FieldElement) *p224.FieldElement {
			return x.SqrtWith(c.source())
		}},
		{"inv", "Print the multiplicative inverse", func(_ config, x *p224.FieldElement) *p224.FieldElement {
			return x.Invert()
		}},
		{"neg", "Print the additive inverse", func(_ config, x *p224.FieldElement) *p224.FieldElement {
			return x.Negate()
		}},
		{"sqr", "Print the square", func(_ config, x *p224.FieldElement) *p224.FieldElement {
			return x.Square()
		}},
	}

	binary := []struct {
		use, short string
		op         binaryOp
	}{
		{"add", "Print x + y", (*p224.FieldElement).Add},
		{"sub", "Print x - y", (*p224.FieldElement).Subtract},
		{"mul", "Print x * y", (*p224.FieldElement).Multiply},
		{"div", "Print x / y", (*p224.FieldElement).Divide},
	}

	var cmds []*cobra.Command
	for _, u := range unary {
		cmds = append(cmds, unaryCmd(u.use, u.short, u.op))
	}
	for _, b := range binary {
		cmds = append(cmds, binaryCmd(b.use, b.short, b.op))
	}
	cmds = append(cmds, isSquareCmd())
	return cmds
}

func unaryCmd(use, short string, op unaryOp) *cobra.Command {
	return &cobra.Command{
		Use:   use + " x",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig()
			if err != nil {
				return err
			}
			f := p224.P224()
			x, err := c.parseElement(f, args[0])
			if err != nil {
				return err
			}
			if use == "inv" && x.IsZero() {
				return errors.New("zero has no inverse")
			}
			logger.Debug("evaluating", zap.String("op", use), zap.Stringer("x", x))
			return printResult(cmd.OutOrStdout(), c, op(c, x))
		},
	}
}

func binaryCmd(use, short string, op binaryOp) *cobra.Command {
	return &cobra.Command{
		Use:   use + " x y",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig()
			if err != nil {
				return err
			}
			f := p224.P224()
			x, err := c.parseElement(f, args[0])
			if err != nil {
				return err
			}
			y, err := c.parseElement(f, args[1])
			if err != nil {
				return err
			}
			if use == "div" && y.IsZero() {
				return errors.New("division by zero")
			}
			logger.Debug("evaluating", zap.String("op", use), zap.Stringer("x", x), zap.Stringer("y", y))
			return printResult(cmd.OutOrStdout(), c, op(x, y))
		},
	}
}

func isSquareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "issquare x",
		Short: "Print whether x is a quadratic residue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig()
			if err != nil {
				return err
			}
			x, err := c.parseElement(p224.P224(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), x.IsSquare())
			return errors.Wrap(err, "writing result")
		},
	}
}

func printResult(w io.Writer, c config, e *p224.FieldElement) error {
	out := "none"
	if e != nil {
		out = c.format(e)
	}
	_, err := fmt.Fprintln(w, out)
	return errors.Wrap(err, "writing result")
}
