package model

// Column はカンバンボードの列を表す。表示順はid昇順。
type Column struct {
	ID    int
	Title string
}

// Card はボード上の1枚のカードを表す。
// ColumnIDの付け替えがカードの「移動」に相当する。
type Card struct {
	ID       int
	Title    string
	ColumnID int
}

// ColumnWithCards は列とその列に属するカードをまとめたビュー用構造体。
type ColumnWithCards struct {
	Column
	Cards []Card
}
