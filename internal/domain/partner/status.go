package partner

import (
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Umbrales de promoción (puntos acumulados).
var (
	SelectionThreshold = decimal.NewFromInt(2000)
	EliteThreshold     = decimal.NewFromInt(25000)
)

// PointsPerUnit puntos ganados por unidad monetaria pagada.
var PointsPerUnit = decimal.NewFromInt(10)

// Period periodo de una venta a crédito relativo a su fecha límite.
type Period int

const (
	P1 Period = iota + 1 // deadline - date >= factor
	P2                   // 0 <= deadline - date < factor
	P3                   // 0 < date - deadline <= factor
	P4                   // date - deadline > factor
)

// PeriodOf determina el periodo de pago en la fecha date.
func PeriodOf(date, deadline, factor int) Period {
	switch {
	case deadline-date >= factor:
		return P1
	case deadline-date >= 0:
		return P2
	case date-deadline <= factor:
		return P3
	default:
		return P4
	}
}

var (
	pct5  = decimal.NewFromFloat(0.05)
	pct10 = decimal.NewFromFloat(0.10)
)

func days(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// Discount fracción de descuento según estatuto y periodo.
func Discount(tier entity.Tier, date, deadline, factor int) decimal.Decimal {
	period := PeriodOf(date, deadline, factor)
	switch tier {
	case entity.TierElite:
		switch period {
		case P1, P2:
			return pct10
		case P3:
			return pct5
		}
	case entity.TierSelection:
		switch period {
		case P1:
			return pct10
		case P2:
			// solo si faltan al menos 2 días para el inicio de P3
			if date <= deadline-2 {
				return pct5
			}
		}
	default:
		if period == P1 {
			return pct10
		}
	}
	return decimal.Zero
}

// Penalty fracción de penalización según estatuto y días transcurridos en P3/P4.
func Penalty(tier entity.Tier, date, deadline, factor int) decimal.Decimal {
	period := PeriodOf(date, deadline, factor)
	p4Start := deadline + factor
	switch tier {
	case entity.TierElite:
		return decimal.Zero
	case entity.TierSelection:
		if period == P4 {
			return pct5.Mul(days(date - p4Start))
		}
	default:
		switch period {
		case P3:
			return pct5.Mul(days(date - deadline))
		case P4:
			return pct10.Mul(days(date - p4Start))
		}
	}
	return decimal.Zero
}

// Price precio final de una venta: base × (1 - descuento) × (1 + penalización).
func Price(tier entity.Tier, base decimal.Decimal, date, deadline, factor int) decimal.Decimal {
	one := decimal.NewFromInt(1)
	d := Discount(tier, date, deadline, factor)
	p := Penalty(tier, date, deadline, factor)
	return base.Mul(one.Sub(d)).Mul(one.Add(p))
}

// Promote aplica promociones sucesivas mientras los puntos lo permitan.
func Promote(tier entity.Tier, points decimal.Decimal) entity.Tier {
	for {
		next := tier
		switch tier {
		case entity.TierNormal:
			if points.GreaterThanOrEqual(SelectionThreshold) {
				next = entity.TierSelection
			}
		case entity.TierSelection:
			if points.GreaterThanOrEqual(EliteThreshold) {
				next = entity.TierElite
			}
		}
		if next == tier {
			return tier
		}
		tier = next
	}
}

// Demote baja un escalón y devuelve los puntos que se conservan:
// Elite→Selection 25%, Selection→Normal 10%, Normal pierde todos los puntos.
func Demote(tier entity.Tier, points decimal.Decimal) (entity.Tier, decimal.Decimal) {
	switch tier {
	case entity.TierElite:
		return entity.TierSelection, points.Mul(decimal.NewFromFloat(0.25))
	case entity.TierSelection:
		return entity.TierNormal, points.Mul(pct10)
	default:
		return entity.TierNormal, decimal.Zero
	}
}

// RewardPoints puntos por un pago.
func RewardPoints(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount.Mul(PointsPerUnit)
}
