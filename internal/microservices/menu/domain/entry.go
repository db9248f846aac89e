package domain

import "github.com/shopspring/decimal"

type Entry struct {
	ArticleNo int             `json:"article_no"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}
