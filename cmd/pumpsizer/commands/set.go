package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pumpsizer/internal/domain"
)

type fieldSetter func(doc *domain.Document, value string) error

func number(dst func(doc *domain.Document) *float64) fieldSetter {
	return func(doc *domain.Document, value string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return err
		}
		*dst(doc) = v
		return nil
	}
}

var fields = map[string]fieldSetter{
	"pool.name": func(doc *domain.Document, v string) error {
		doc.Project.Name = v
		return nil
	},
	"pool.volume":   number(func(d *domain.Document) *float64 { return &d.Project.PoolVolume }),
	"pool.turnover": number(func(d *domain.Document) *float64 { return &d.Project.TurnoverHours }),

	"spa.enabled": func(doc *domain.Document, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		doc.Spa.Enabled = b
		return nil
	},
	"spa.mode": func(doc *domain.Document, v string) error {
		m, err := domain.ParseSpaMode(v)
		if err != nil {
			return err
		}
		doc.Spa.Mode = m
		return nil
	},
	"spa.volume":       number(func(d *domain.Document) *float64 { return &d.Spa.Volume }),
	"spa.turnover":     number(func(d *domain.Document) *float64 { return &d.Spa.TurnoverHours }),
	"spa.jets":         number(func(d *domain.Document) *float64 { return &d.Spa.JetCount }),
	"spa.flow-per-jet": number(func(d *domain.Document) *float64 { return &d.Spa.FlowPerJet }),
	"spa.head":         number(func(d *domain.Document) *float64 { return &d.Spa.TargetHead }),

	"eng.distance":  number(func(d *domain.Document) *float64 { return &d.Engineering.EquipmentDistance }),
	"eng.fittings":  number(func(d *domain.Document) *float64 { return &d.Engineering.FittingAllowance }),
	"eng.diameter":  number(func(d *domain.Document) *float64 { return &d.Engineering.PipeDiameter }),
	"eng.elevation": number(func(d *domain.Document) *float64 { return &d.Engineering.ElevationChange }),
	"eng.equipment": number(func(d *domain.Document) *float64 { return &d.Engineering.EquipmentHeadLoss }),
	"eng.c":         number(func(d *domain.Document) *float64 { return &d.Engineering.Roughness }),
	"eng.scope": func(doc *domain.Document, v string) error {
		s, err := domain.ParseApplyScope(v)
		if err != nil {
			return err
		}
		doc.Engineering.ApplyScope = s
		return nil
	},
}

func fieldNames() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// applyField sets one named field on doc.
func applyField(doc *domain.Document, field, value string) error {
	set, ok := fields[field]
	if !ok {
		return fmt.Errorf("unknown field %q (known: %s)", field, strings.Join(fieldNames(), ", "))
	}
	if err := set(doc, value); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Change one configuration field",
		Long:  "Change one configuration field. Fields: " + strings.Join(fieldNames(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := appCtx.Change(func(doc *domain.Document) error {
				return applyField(doc, args[0], args[1])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (revision %d)\n", args[0], args[1], snap.Version)
			return nil
		},
	}
}
