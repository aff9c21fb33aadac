package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-ggc/internal/application/dto"
	"github.com/jhoicas/almacen-ggc/internal/application/report"
	"github.com/jhoicas/almacen-ggc/internal/application/warehouse"
	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/infrastructure/importer"
)

// runScript aplica un guion de operaciones, una por línea ('#' inicia comentario):
//
//	ADVANCE|días
//	PARTNER|id|nombre|dirección
//	PRODUCT|id
//	DERIVED|id|factor|c1:q1#c2:q2
//	PURCHASE|socio|producto|cantidad|precio
//	SALE|socio|producto|cantidad|fechaLímite
//	PAY|transacción
//	BREAKDOWN|socio|producto|cantidad
//	TOGGLE|socio|producto
//	NOTIFICATIONS|socio
//
// PURCHASE registra el producto como simple si no existe.
// Los errores de dominio se imprimen y el guion sigue; una línea mal formada lo detiene.
func runScript(r io.Reader, uc *warehouse.WarehouseUseCase, out io.Writer) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res, err := runCommand(strings.Split(line, "|"), uc)
		if err != nil {
			var ue *usageError
			if errors.As(err, &ue) {
				return &importer.ParseError{Line: n, Err: err}
			}
			fmt.Fprintf(out, "ERROR|%d|%v\n", n, err)
			continue
		}
		for _, l := range res {
			fmt.Fprintln(out, l)
		}
	}
	return sc.Err()
}

// ensureSimpleProduct registra productID como producto simple si el socio existe y el
// producto no está en el catálogo.
func ensureSimpleProduct(uc *warehouse.WarehouseUseCase, partnerID, productID string) error {
	if _, err := uc.Partner(partnerID); err != nil {
		return err
	}
	if _, err := uc.Product(productID); !errors.Is(err, domain.ErrUnknownProduct) {
		return nil
	}
	_, err := uc.RegisterProduct(productID)
	return err
}

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usage(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// arities campos esperados por operación (incluido el nombre).
var arities = map[string]int{
	"ADVANCE": 2, "PARTNER": 4, "PRODUCT": 2, "DERIVED": 4, "PURCHASE": 5,
	"SALE": 5, "PAY": 2, "BREAKDOWN": 4, "TOGGLE": 3, "NOTIFICATIONS": 2,
}

func runCommand(f []string, uc *warehouse.WarehouseUseCase) ([]string, error) {
	arity, ok := arities[f[0]]
	if !ok {
		return nil, usage("operación desconocida %q", f[0])
	}
	if len(f) != arity {
		return nil, usage("%s espera %d campos, tiene %d", f[0], arity, len(f))
	}

	switch f[0] {
	case "ADVANCE":
		days, err := atoi(f[1])
		if err != nil {
			return nil, err
		}
		return nil, uc.AdvanceDate(days)
	case "PARTNER":
		_, err := uc.RegisterPartner(f[1], f[2], f[3])
		return nil, err
	case "PRODUCT":
		_, err := uc.RegisterProduct(f[1])
		return nil, err
	case "DERIVED":
		factor, err := decimal.NewFromString(f[2])
		if err != nil {
			return nil, usage("factor %q", f[2])
		}
		comps, err := importer.ParseRecipe(f[3])
		if err != nil {
			return nil, usage("%v", err)
		}
		_, err = uc.RegisterDerivedProduct(f[1], factor, comps)
		return nil, err
	case "PURCHASE":
		qty, err := atoi(f[3])
		if err != nil {
			return nil, err
		}
		price, err := decimal.NewFromString(f[4])
		if err != nil {
			return nil, usage("precio %q", f[4])
		}
		if err := ensureSimpleProduct(uc, f[1], f[2]); err != nil {
			return nil, err
		}
		tx, err := uc.RegisterPurchase(f[1], f[2], qty, price)
		if err != nil {
			return nil, err
		}
		return []string{report.TransactionLine(tx, tx.PaidAmount)}, nil
	case "SALE":
		qty, err := atoi(f[3])
		if err != nil {
			return nil, err
		}
		deadline, err := atoi(f[4])
		if err != nil {
			return nil, err
		}
		tx, err := uc.RegisterSale(f[1], f[2], qty, deadline)
		if err != nil {
			return nil, err
		}
		current, err := uc.CurrentPrice(tx.ID)
		if err != nil {
			return nil, err
		}
		return []string{report.TransactionLine(tx, current)}, nil
	case "PAY":
		id, err := atoi(f[1])
		if err != nil {
			return nil, err
		}
		amount, err := uc.ReceivePayment(id)
		if err != nil {
			return nil, err
		}
		return []string{"PAGO|" + f[1] + "|" + report.Money(amount)}, nil
	case "BREAKDOWN":
		qty, err := atoi(f[3])
		if err != nil {
			return nil, err
		}
		tx, err := uc.RegisterBreakdown(f[1], f[2], qty)
		if err != nil || tx == nil {
			return nil, err
		}
		return []string{report.TransactionLine(tx, tx.PaidAmount)}, nil
	case "TOGGLE":
		muted, err := uc.ToggleNotifications(f[1], f[2])
		if err != nil {
			return nil, err
		}
		state := "ON"
		if muted {
			state = "OFF"
		}
		return []string{"NOTIFICACIONES|" + f[1] + "|" + f[2] + "|" + state}, nil
	case "NOTIFICATIONS":
		ns, err := uc.ClearPendingNotifications(f[1])
		if err != nil {
			return nil, err
		}
		lines := make([]string, 0, len(ns))
		for _, n := range ns {
			lines = append(lines, report.NotificationLine(n))
		}
		return lines, nil
	}
	return nil, nil
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, usage("entero inválido %q", s)
	}
	return n, nil
}

// printReport imprime los listados y los saldos.
func printReport(out io.Writer, r *dto.WarehouseReport) {
	fmt.Fprintf(out, "# fecha %d\n", r.Date)
	fmt.Fprintln(out, "# productos")
	for _, p := range r.Products {
		fmt.Fprintln(out, p.Line)
	}
	fmt.Fprintln(out, "# lotes")
	for _, b := range r.Batches {
		fmt.Fprintln(out, b.Line)
	}
	fmt.Fprintln(out, "# socios")
	for _, p := range r.Partners {
		fmt.Fprintln(out, p.Line)
	}
	fmt.Fprintln(out, "# transacciones")
	for _, t := range r.Transactions {
		fmt.Fprintln(out, t.Line)
	}
	fmt.Fprintf(out, "# saldo disponible %s\n", report.Money(r.AvailableBalance))
	fmt.Fprintf(out, "# saldo contable %s\n", report.Money(r.AccountingBalance))
}
