package record

const (
	SelectExpense = `
		SELECT id, user_id, expense_date, amount_minor_units, category_id
		FROM expenses
		WHERE id = $1
	`
	SelectIncome = `
		SELECT id, user_id, income_date, amount_minor_units, category_id
		FROM incomes
		WHERE id = $1
	`
)
