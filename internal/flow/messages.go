package flow

// Global commands. These fire from any stage, including an ended session.
const (
	CmdStartSearch    = "搜尋餐廳"
	CmdViewFavorites  = "查看最愛"
	CmdRandomFavorite = "隨機最愛"
	CmdEnd            = "結束"
	CmdContinue       = "繼續"

	// CmdRandom is only meaningful while browsing search results.
	CmdRandom = "隨機"
)

const (
	msgGreeting = "嗨！我可以幫您找附近的餐廳。\n點選下方按鈕，或輸入「" + CmdStartSearch + "」開始。"
	msgClosing  = "感謝使用，期待下次為您服務！"

	msgAskLocation = "請傳送您的位置，或輸入想搜尋的地址："
	msgGeocodeMiss = "找不到這個地址，請換個寫法再試一次。"
	msgAskTopCount = "想看幾間餐廳呢？請輸入數字："
	msgBadTopCount = "請輸入一個大於 0 的數字："
	msgAskRadius   = "想搜尋多大的範圍呢？請輸入公尺數："
	msgBadRadius   = "請輸入一個大於 0 的公尺數："
	msgNoResults   = "這個範圍內找不到餐廳，請輸入更大的公尺數試試："

	msgPickPrompt    = "輸入編號查看餐廳細節，或輸入「" + CmdRandom + "」讓我幫您選："
	msgMorePrompt    = "輸入編號查看餐廳細節、輸入「" + CmdRandom + "」讓我幫您選，或輸入「" + CmdContinue + "」看更多："
	msgNoMoreResults = "沒有更多餐廳了。輸入編號查看細節，或輸入「" + CmdRandom + "」讓我幫您選："
	msgBadSelection  = "沒有這個編號喔，請輸入 1 到 %d 之間的數字。"

	msgNoFavorites   = "您還沒有收藏任何餐廳喔。"
	msgFavMorePrompt = "輸入「" + CmdContinue + "」看更多收藏。"
	msgNoMoreFavs    = "沒有更多收藏了。"
	msgFavProcessing = "收藏處理中..."
	msgFavExists     = "這間餐廳已經在您的最愛裡囉。"
	msgFavAdded      = "已加入最愛！"
	msgFavDeleted    = "已從最愛移除。"
	msgFavDeleteMiss = "這筆收藏已經不存在了。"
	msgRandomPick    = "🎲 今天就吃這間吧！"

	msgProviderError = "餐廳資料暫時拿不到，請稍後再試一次。"
	msgPersistError  = "收藏資料暫時無法處理，請稍後再試一次。"
	msgNothingToDo   = "目前沒有進行中的查詢。"
)
