package trip

// Accommodations returns the booked hotels in stay order.
func Accommodations() []Accommodation {
	return []Accommodation{
		{
			ID:        "kyoto-forza",
			Name:      "Hotel Forza Kyoto Shijo Kawaramachi",
			NameJP:    "ホテルフォルツァ京都四条河原町",
			Address:   "Kyoto, Shimogyo-ku Tachiurihigashi-cho 25-1",
			Phone:     "+81 75 254 8251",
			CheckIn:   "2026/02/27 14:00",
			CheckOut:  "2026/02/28 11:00",
			RoomType:  "標準雙床房 (可住 2 名成人)",
			Price:     "JPY 18,855",
			Intro:     "這家飯店位於京都最繁華的四條河原町，交通極其便利。飯店設計摩登且注重細節，客房配備多樣智能設施。步行即可抵達錦市場、鴨川與先斗町，是體驗京都夜晚生活與購物的絕佳據點。",
			Amenities: []string{"免費早餐", "私人衛浴", "空氣清淨機", "電熱水壺", "吹風機", "冰箱", "免費 WiFi"},
			Notes:     []string{"無停車設施", "全面禁菸", "含 10% 加值稅", "2 位成人、1 位孩童(0歲)"},
			GPS:       GPS{Lat: "35.003483", Lng: "135.763311"},
		},
		{
			ID:        "osaka-tokyu",
			Name:      "東急大阪卓越飯店 (Tokyu Osaka Excel Hotel Tokyu)",
			NameJP:    "大阪エクセルホテル東急",
			Address:   "Osaka, Chuo-ku Kyutaro-machi 4-1-15",
			Phone:     "+81 6 6252 0109",
			CheckIn:   "2026/02/28 14:00",
			CheckOut:  "2026/03/03 11:00",
			RoomType:  "高級雙床房 - 禁菸",
			Price:     "JPY 76,565 (3晚)",
			Intro:     "飯店位於大阪市中心的本町區域，是日本首家位於寺院（南御堂）上方的飯店，結合了現代奢華與寧靜氛圍。鄰近心齋橋與難波，房內視野開闊，可以欣賞大阪市景，非常適合在大阪進行多日遊玩的旅客。",
			Amenities: []string{"免費早餐", "市景景觀", "保險箱", "咖啡/茶沖泡設備", "洗手台沖洗座", "健身房", "免費 WiFi"},
			Notes:     []string{"無停車設施", "全面禁菸", "需出示附照片身份證明", "2 位成人入住"},
			GPS:       GPS{Lat: "34.680153", Lng: "135.500025"},
		},
	}
}

// HarukaSchedule returns suggested Haruka departures from Kansai Airport to
// Kyoto after the 14:05 arrival.
func HarukaSchedule() []TrainSchedule {
	return []TrainSchedule{
		{ID: "h1", Name: "Haruka 34號", Dep: "15:14 (關西機場)", Arr: "16:34 (京都)", Duration: "80分", Note: "時間緊湊"},
		{ID: "h2", Name: "Haruka 36號", Dep: "15:44 (關西機場)", Arr: "17:04 (京都)", Duration: "80分", Note: "最推薦"},
		{ID: "h3", Name: "Haruka 38號", Dep: "16:14 (關西機場)", Arr: "17:34 (京都)", Duration: "80分", Note: "餘裕"},
		{ID: "h4", Name: "Haruka 40號", Dep: "16:44 (關西機場)", Arr: "18:04 (京都)", Duration: "80分", Note: "備用"},
	}
}

// RapitSchedule returns suggested Rapit departures from Namba to Kansai
// Airport ahead of the 17:45 flight.
func RapitSchedule() []TrainSchedule {
	return []TrainSchedule{
		{ID: "r1", Name: "Rapit β 43號", Dep: "14:00 (難波)", Arr: "14:37 (關西機場)", Duration: "37分", Note: "提早"},
		{ID: "r2", Name: "Rapit β 45號", Dep: "14:30 (難波)", Arr: "15:07 (關西機場)", Duration: "37分", Note: "最推薦"},
		{ID: "r3", Name: "Rapit β 47號", Dep: "15:00 (難波)", Arr: "15:39 (關西機場)", Duration: "39分", Note: "稍趕"},
	}
}
