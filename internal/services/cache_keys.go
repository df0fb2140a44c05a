package services

const (
	KeyTokenBalance = "balance:%s"
	KeyTokenPrice   = "price:%s"
)
