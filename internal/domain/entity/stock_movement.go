package entity

import "time"

// Tipos de movimiento del libro de stock.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// Motivos de movimiento. El subconjunto válido para ajustes manuales depende del
// tipo de ajuste (ver ledger.ValidReasonsFor).
const (
	ReasonSales           = "sales"
	ReasonAdjustmentPlus  = "adjustment_plus"
	ReasonAdjustmentMinus = "adjustment_minus"
	ReasonReturnSupplier  = "return_supplier"
	ReasonReturnPatient   = "return_patient"
	ReasonExpired         = "expired"
	ReasonDamage          = "damage"
	ReasonTransferOut     = "transfer_out"
	ReasonInitialStock    = "initial_stock"
	ReasonOther           = "other"
)

// StockMovement es una entrada del libro de movimientos (append-only: una vez
// creada nunca se actualiza ni se borra). StockAfter = StockBefore ± Quantity
// según el tipo; ese cálculo ocurre solo dentro de la transacción del servidor.
type StockMovement struct {
	ID             int64
	MovementNumber string // único, con aspecto secuencial: MV-20260830-000123
	MedicineID     int64
	BatchID        *int64 // opcional: movimiento atribuido a un lote
	Type           string // in | out
	Reason         string
	Quantity       int64 // siempre positivo; el signo lo da Type
	Unit           string
	StockBefore    int64
	StockAfter     int64
	ReferenceType  *string // transacción de origen: sale, goods_receipt, ...
	ReferenceID    *int64
	Notes          string
	MovementDate   time.Time
	CreatedAt      time.Time
	CreatedBy      string // UserID (UUID)
}
