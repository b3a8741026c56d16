package validate

// Field messages surfaced to clients.  These strings are part of the wire
// contract with the existing frontend, so they stay verbatim.
const (
	MsgAccountRequired = "使用者帳號必填"
	MsgAccountTooShort = "使用者帳號最少4個字"
	MsgAccountTooLong  = "使用者帳號最多12個字"
	MsgAccountFormat   = "使用者帳號只能是英文和數字"
	MsgAccountTaken    = "使用者帳號已註冊"

	MsgEmailRequired = "使用者信箱必填"
	MsgEmailFormat   = "信箱格式不正確"
	MsgEmailTaken    = "使用者信箱已註冊"

	MsgPasswordRequired = "使用者密碼必填"
	MsgPasswordLength   = "密碼長度最少 4 個字，最多 12 個字"

	MsgCartProductRequired  = "缺少商品欄位"
	MsgCartQuantityRequired = "缺少商品數量"

	MsgProductNameRequired        = "缺少商品名稱"
	MsgProductPriceRequired       = "缺少商品價格"
	MsgProductImageRequired       = "缺少商品圖片"
	MsgProductDescriptionRequired = "缺少商品說明"
	MsgProductCategoryRequired    = "缺少商品分類"
	MsgProductCategoryInvalid     = "商品分類錯誤"
	MsgProductSellRequired        = "缺少商品上架狀態"

	MsgCourtRequired        = "場地，必填"
	MsgCourtInvalid         = "場地錯誤"
	MsgDateRequired         = "日期必填"
	MsgBeginRequired        = "開始時間必填"
	MsgEndRequired          = "結束時間必填"
	MsgPeopleNumberRequired = "開放名額，必填"
	MsgPeopleNumberNegative = "開放名額不能小於0"
	MsgHeightRequired       = "女網/男網，必填"
	MsgHeightInvalid        = "請選擇女網/男網"
	MsgInfoRequired         = "說明必填"
	MsgInfoInvalid          = "請選擇說明敘述"
	MsgOnlineRequired       = "是否開放報名，必填"
)
