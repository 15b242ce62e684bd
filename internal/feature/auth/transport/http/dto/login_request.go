package dto

// LoginReq は/loginおよび/api/tokenエンドポイントのリクエストボディを表します。
type LoginReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// TokenRes はAPIトークン発行のレスポンスです。
type TokenRes struct {
	Token string `json:"token"`
}

// MessageRes は汎用のメッセージレスポンスです。
type MessageRes struct {
	Message string `json:"message"`
}
