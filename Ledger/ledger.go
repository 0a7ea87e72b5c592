package Ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ScrapBook/Models"
)

// Scope pins every ledger query to one company and godown.
type Scope struct {
	CompanyID uint
	GodownID  uint
}

// DayAggregate holds the four sums a balance view needs for one
// vendor/date. All values are zero, never null, when no rows match.
type DayAggregate struct {
	PrevPurchase  decimal.Decimal `json:"prev_purchase"`
	PrevPaid      decimal.Decimal `json:"prev_paid"`
	TodayPurchase decimal.Decimal `json:"today_purchase"`
	TodayPaid     decimal.Decimal `json:"today_paid"`
}

// DayBalance is the computed snapshot tuple.
//
// Sign convention, used everywhere: balance = payments - purchases.
// A negative balance means the business owes the vendor.
type DayBalance struct {
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	PurchaseAmount  decimal.Decimal `json:"purchase_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
}

func sumScan(q *gorm.DB) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := q.Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Aggregate computes prior and same-day purchase/payment sums for one
// kabadiwala vendor. Dates are plain YYYY-MM-DD strings; comparisons are
// date-only. Pure read, no side effects.
func Aggregate(db *gorm.DB, scope Scope, vendorID uint, date string) (DayAggregate, error) {
	var agg DayAggregate
	var err error

	purchases := func(cmp string) *gorm.DB {
		return db.Model(&Models.KabadiwalaRecord{}).
			Where("company_id = ? AND godown_id = ? AND vendor_id = ?", scope.CompanyID, scope.GodownID, vendorID).
			Where("date "+cmp+" ?", date).
			Select("COALESCE(SUM(total_amount),0)")
	}
	// Payments carry their own date; the parent record only supplies scope.
	payments := func(cmp string) *gorm.DB {
		return db.Model(&Models.KabadiwalaPayment{}).
			Joins("JOIN kabadiwala_records kr ON kr.id = kabadiwala_payments.kabadiwala_id").
			Where("kr.company_id = ? AND kr.godown_id = ? AND kr.vendor_id = ? AND kr.deleted_at IS NULL", scope.CompanyID, scope.GodownID, vendorID).
			Where("kabadiwala_payments.date "+cmp+" ?", date).
			Select("COALESCE(SUM(kabadiwala_payments.amount),0)")
	}

	if agg.PrevPurchase, err = sumScan(purchases("<")); err != nil {
		return agg, fmt.Errorf("prior purchases: %w", err)
	}
	if agg.PrevPaid, err = sumScan(payments("<")); err != nil {
		return agg, fmt.Errorf("prior payments: %w", err)
	}
	if agg.TodayPurchase, err = sumScan(purchases("=")); err != nil {
		return agg, fmt.Errorf("same-day purchases: %w", err)
	}
	if agg.TodayPaid, err = sumScan(payments("=")); err != nil {
		return agg, fmt.Errorf("same-day payments: %w", err)
	}
	return agg, nil
}

// UpsertDailyBalance recomputes and stores the daily snapshot for one
// vendor/date. Must be called inside the same transaction as the purchase
// or payment write that triggered it; any error aborts that transaction.
//
// The vendor row is locked FOR UPDATE first so two writers hitting the same
// vendor serialize before either reads the aggregates. Without the lock a
// concurrent read-then-upsert pair can undercount one of the writes.
func UpsertDailyBalance(tx *gorm.DB, scope Scope, vendorID uint, date string) (DayBalance, error) {
	var bal DayBalance

	var vendor Models.Vendor
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&vendor, vendorID).Error; err != nil {
		return bal, fmt.Errorf("lock vendor %d: %w", vendorID, err)
	}

	agg, err := Aggregate(tx, scope, vendorID, date)
	if err != nil {
		return bal, err
	}

	bal.PreviousBalance = agg.PrevPaid.Sub(agg.PrevPurchase).Round(2)
	bal.PurchaseAmount = agg.TodayPurchase
	bal.PaidAmount = agg.TodayPaid
	bal.CurrentBalance = bal.PreviousBalance.Sub(agg.TodayPurchase).Add(agg.TodayPaid).Round(2)

	snapshot := Models.KabadiwalaDailyBalance{
		CompanyID:       scope.CompanyID,
		GodownID:        scope.GodownID,
		VendorID:        vendorID,
		Date:            date,
		PreviousBalance: bal.PreviousBalance,
		PurchaseAmount:  bal.PurchaseAmount,
		PaidAmount:      bal.PaidAmount,
		CurrentBalance:  bal.CurrentBalance,
		UpdatedAt:       time.Now(),
	}
	err = tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "company_id"}, {Name: "godown_id"}, {Name: "vendor_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"previous_balance", "purchase_amount", "paid_amount", "current_balance", "updated_at",
		}),
	}).Create(&snapshot).Error
	if err != nil {
		return bal, fmt.Errorf("upsert daily balance: %w", err)
	}
	return bal, nil
}

// RecomputeFrom re-upserts every snapshot on or after the given date for
// one vendor. Back-dated purchases and payments shift the previous_balance
// of every later day, so callers run this instead of a single-date upsert
// whenever the written date is in the past.
func RecomputeFrom(tx *gorm.DB, scope Scope, vendorID uint, from string) error {
	dates := map[string]struct{}{from: {}, Today(): {}}

	var recordDates []string
	err := tx.Model(&Models.KabadiwalaRecord{}).
		Where("company_id = ? AND godown_id = ? AND vendor_id = ? AND date >= ?", scope.CompanyID, scope.GodownID, vendorID, from).
		Distinct().Pluck("date", &recordDates).Error
	if err != nil {
		return err
	}
	var paymentDates []string
	err = tx.Model(&Models.KabadiwalaPayment{}).
		Joins("JOIN kabadiwala_records kr ON kr.id = kabadiwala_payments.kabadiwala_id").
		Where("kr.company_id = ? AND kr.godown_id = ? AND kr.vendor_id = ? AND kr.deleted_at IS NULL", scope.CompanyID, scope.GodownID, vendorID).
		Where("kabadiwala_payments.date >= ?", from).
		Distinct().Pluck("kabadiwala_payments.date", &paymentDates).Error
	if err != nil {
		return err
	}

	// Snapshots can exist on days with no activity (the nightly refresher
	// writes today's row regardless); their previous_balance shifts too.
	var snapshotDates []string
	err = tx.Model(&Models.KabadiwalaDailyBalance{}).
		Where("company_id = ? AND godown_id = ? AND vendor_id = ? AND date >= ?", scope.CompanyID, scope.GodownID, vendorID, from).
		Distinct().Pluck("date", &snapshotDates).Error
	if err != nil {
		return err
	}

	for _, d := range recordDates {
		dates[d] = struct{}{}
	}
	for _, d := range paymentDates {
		dates[d] = struct{}{}
	}
	for _, d := range snapshotDates {
		dates[d] = struct{}{}
	}

	ordered := make([]string, 0, len(dates))
	for d := range dates {
		ordered = append(ordered, d)
	}
	sort.Strings(ordered)

	for _, d := range ordered {
		if _, err := UpsertDailyBalance(tx, scope, vendorID, d); err != nil {
			return err
		}
	}
	return nil
}

// Today returns the current date in the ledger's day granularity.
func Today() string {
	return time.Now().Format("2006-01-02")
}
