package trip

import "slices"

// SeedItinerary returns the initial five-day itinerary with items in schedule order.
func SeedItinerary() []DayItinerary {
	days := []DayItinerary{
		{
			ID:       1,
			Date:     "2026/02/27",
			Location: Kyoto,
			Title:    "抵達京都：古都之夜",
			Hotel:    "Hotel Forza Kyoto Shijo Kawaramachi",
			Weather: WeatherData{
				TempRange: "4°C - 11°C",
				Condition: "多雲時晴 / 偏冷",
				Clothing:  "發熱衣 + 毛衣 + 防風大衣，手套與圍巾建議備用。",
				Tips:      []string{"關西機場風大，出關後請注意保暖", "Haruka 車廂內暖氣強，建議洋蔥式穿法"},
			},
			Items: []ScheduleItem{
				{
					ID:          "1-1",
					Title:       "桃園國際機場 (TPE) -> 關西國際機場 (KIX)",
					Description: "搭乘 MM024 樂桃航空",
					TransportAfter: &TransportInfo{
						Mode:     TransportHaruka,
						Detail:   "關西機場 -> 京都車站",
						Duration: "約 75 分鐘",
						Note:     "建議預訂最近班次之指定席，舒適度較高。",
					},
				},
				{
					ID:          "1-2",
					Title:       "Hotel Forza Kyoto Shijo Kawaramachi Check-in",
					Time:        "15:00",
					Description: "飯店地理位置優越，位於四條河原町。",
					TransportAfter: &TransportInfo{
						Mode:     TransportWalk,
						Detail:   "飯店 -> 鴨川地區",
						Duration: "5-10 分鐘",
					},
				},
				{
					ID:          "1-3",
					Title:       "鴨川、先斗町、花見小路",
					Duration:    "3 小時",
					Description: "體驗京都晚上的氛圍，先斗町有許多特色餐廳。",
				},
			},
		},
		{
			ID:       2,
			Date:     "2026/02/28",
			Location: Kyoto,
			Title:    "京都和服體驗與移宿大阪",
			Hotel:    "東急大阪卓悅大飯店",
			Weather: WeatherData{
				TempRange: "3°C - 10°C",
				Condition: "晴朗 / 寒冷",
				Clothing:  "和服體驗可穿暖暖包，內搭低領發熱衣。",
				Tips:      []string{"京都步行較多，建議穿著舒適鞋款", "伏見稻禾攀爬需要體力"},
			},
			Items: []ScheduleItem{
				{
					ID:             "2-1",
					Time:           "09:00",
					Title:          "和服租借：璃光着物",
					Duration:       "1 小時",
					TransportAfter: &TransportInfo{Mode: TransportWalk, Detail: "前往八阪神社", Duration: "15 分鐘"},
				},
				{
					ID:          "2-2",
					Time:        "10:30",
					Title:       "K.D 和服攝影 @ 八阪神社",
					Duration:    "1.5 小時",
					Description: "在神社內進行專業攝影。",
				},
				{
					ID:          "2-3",
					Title:       "祈園、二年坂、三年坂、清水寺",
					Duration:    "3-4 小時",
					Description: "經典京都散策路徑。",
				},
				{
					ID:       "2-4",
					Title:    "下鴨神社、伏見稻禾神社",
					Duration: "2-3 小時",
					TransportAfter: &TransportInfo{
						Mode:     TransportTrain,
						Detail:   "京都車站 -> 大阪 (JR 特急或快速)",
						Duration: "30-45 分鐘",
						Note:     "若是搭乘 JR 新快速只需 30 分鐘，班次頻繁。",
					},
				},
				{
					ID:          "2-5",
					Title:       "梅田地區：藍天大廈 & 藍瓶咖啡",
					Duration:    "2 小時",
					Description: "欣賞大阪百萬夜景。",
				},
				{
					ID:          "2-6",
					Title:       "心齋橋、道頓堀 (Optional)",
					IsOptional:  true,
					Description: "晚餐與逛街熱區。",
				},
			},
		},
		{
			ID:       3,
			Date:     "2026/03/01",
			Location: Osaka,
			Title:    "大阪周遊卡：名勝與柯南巡禮",
			Hotel:    "東急大阪卓悅大飯店",
			Weather: WeatherData{
				TempRange: "5°C - 12°C",
				Condition: "多雲",
				Clothing:  "長袖衛衣 + 夾克，戶外行程多，注意足部保暖。",
				Tips:      []string{"善用大阪周遊卡免費設施", "通天閣人潮眾多建議提早"},
			},
			Items: []ScheduleItem{
				{
					ID:             "3-1",
					Title:          "大阪城公園、警察本部、讀賣電視台",
					Duration:       "3 小時",
					Description:    "柯南迷必訪景點，警察本部外觀壯觀。",
					TransportAfter: &TransportInfo{Mode: TransportSubway, Detail: "地鐵中央線轉御堂筋線", Duration: "20 分鐘"},
				},
				{
					ID:          "3-2",
					Title:       "阿倍野 Harukas",
					Duration:    "1.5 小時",
					Description: "日本第一高樓，周遊卡購買門票通常有優惠。",
				},
				{
					ID:          "3-3",
					Title:       "達摩串炸 & 通天閣(柯南) & 今宮戎神社(柯南)",
					Duration:    "3 小時",
					Description: "體驗新世界風情，尋找柯南電影中的場景。",
				},
				{
					ID:          "3-4",
					Title:       "心齋橋、道頓堀、天保山大摩天輪、聖瑪麗亞號",
					IsOptional:  true,
					Description: "若時間充裕可前往港灣區使用周遊卡。",
				},
			},
		},
		{
			ID:       4,
			Date:     "2026/03/02",
			Location: Osaka,
			Title:    "環球影城冒險日",
			Hotel:    "東急大阪卓悅大飯店",
			Weather: WeatherData{
				TempRange: "4°C - 10°C",
				Condition: "晴 / 強風",
				Clothing:  "防風保暖外套必備，建議圍巾。",
				Tips:      []string{"USJ 靠海風大，體感溫度較低", "建議提早 1 小時到門口排隊"},
			},
			Items: []ScheduleItem{
				{
					ID:             "4-1",
					Title:          "日本環球影城 (USJ)",
					Duration:       "整天",
					Description:    "任天堂世界、哈利波特等。",
					TransportAfter: &TransportInfo{Mode: TransportSubway, Detail: "JR 櫻島線 -> 市區", Duration: "20 分鐘"},
				},
				{
					ID:          "4-2",
					Title:       "心齋橋、道頓堀最後採買 (Optional)",
					IsOptional:  true,
					Description: "購買藥妝與伴手禮。",
				},
			},
		},
		{
			ID:       5,
			Date:     "2026/03/03",
			Location: Osaka,
			Title:    "最後採買與回程",
			Weather: WeatherData{
				TempRange: "6°C - 13°C",
				Condition: "晴時多雲",
				Clothing:  "方便行動的穿著，預留大衣位置收進行李箱。",
				Tips:      []string{"南海電鐵 Rapit 建議預約指定席", "機場提早 2.5 小時到達"},
			},
			Items: []ScheduleItem{
				{
					ID:       "5-1",
					Title:    "心齋橋、道頓堀補貨",
					Duration: "2-3 小時",
					TransportAfter: &TransportInfo{
						Mode:     TransportRapit,
						Detail:   "難波站 -> 關西機場",
						Duration: "38 分鐘",
						Note:     "請注意 Rapit 班次時間，需對號入座。",
					},
				},
				{
					ID:          "5-2",
					Title:       "關西國際機場 (KIX) -> 桃園國際機場 (TPE)",
					Description: "搭乘 BR129 長榮航空",
					Note:        "回程行李較重，建議提早托運。",
				},
			},
		},
	}
	for i := range days {
		days[i].Items = SortSchedule(days[i].Items)
	}
	return days
}

// SeedFlights returns the two booked flight legs.
func SeedFlights() []Flight {
	return []Flight{
		{
			ID:            "f1",
			Type:          Outbound,
			Airline:       "Peach Aviation (樂桃航空)",
			FlightNo:      "MM024",
			From:          "TPE (桃園 T1)",
			To:            "KIX (關西 T2)",
			DepartureTime: "2026/02/27 10:30",
			ArrivalTime:   "2026/02/27 14:05",
			Terminal:      "KIX Terminal 2",
		},
		{
			ID:            "f2",
			Type:          Inbound,
			Airline:       "EVA Air (長榮航空)",
			FlightNo:      "BR129",
			From:          "KIX (關西 T1)",
			To:            "TPE (桃園 T2)",
			DepartureTime: "2026/03/03 17:45",
			ArrivalTime:   "2026/03/03 19:55",
			Terminal:      "KIX Terminal 1",
		},
	}
}

// SeedChecklist returns the default packing categories.
func SeedChecklist() []ChecklistCategory {
	return []ChecklistCategory{
		{ID: "documents", Title: "旅行文件", Items: []string{"護照", "身分證", "機票", "信用卡", "住宿證明", "USJ門票/快通", "ESIM QRCODE", "日幣現金", "旅平險＋不便險保單"}},
		{ID: "clothing", Title: "衣物", Items: []string{"發熱衣", "長褲", "帽T", "發熱褲", "外套", "內衣褲", "襪子", "手套", "帽子", "薄外套"}},
		{ID: "electronics", Title: "3C用品", Items: []string{"耳機", "行動電源", "充電器", "充電線", "相機", "行李秤", "手機掛繩"}},
		{ID: "toiletries", Title: "衛生用品", Items: []string{"口罩", "濕紙巾", "頸枕", "化妝用品", "衛生棉", "ok蹦", "衛生紙", "護唇膏", "乳液", "牙刷", "牙膏", "牙籤", "棉花棒"}},
	}
}

// SeedCoupons returns the default coupons.
func SeedCoupons() []Coupon {
	return []Coupon{
		{
			ID:          "1",
			Title:       "BIC CAMERA 優惠券",
			Description: "10% 免稅 + 7% 折扣，購買家電必備。",
			URL:         "https://www.biccamera.com.e.as.hp.transer.com/service/logistics/tax-free/index.html",
			ExpiryDate:  "2026-12-31",
		},
		{
			ID:          "2",
			Title:       "唐吉訶德免稅優惠",
			Description: "免稅 10% + 滿額額外折扣。",
			URL:         "https://www.donki.com/en/tax_free/",
			ExpiryDate:  "2026-12-31",
		},
	}
}

var seedShoppingTypes = []string{"藥妝", "零食伴手禮", "動漫/精品", "精品/服飾", "機場限定", "其他"}

// SeedShoppingTypes returns the default shopping types, ending with the fallback type.
func SeedShoppingTypes() []string {
	return slices.Clone(seedShoppingTypes)
}
