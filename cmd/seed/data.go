package main

// Initial literary corpus: authors, works, and tagged passages.

type authorSeed struct {
	Name        string
	NameEn      string
	Era         string
	Nationality string
	StyleTags   []string
	Bio         string
	PlantType   string
	PlantSymbol string
}

type workSeed struct {
	Title      string
	AuthorName string
	Type       string
	Era        string
}

type passageSeed struct {
	Content     string
	AuthorName  string
	WorkTitle   string
	EmotionTags []string
	ImageryTags []string
	SceneTags   []string
	ThemeTags   []string
}

var authorSeeds = []authorSeed{
	{
		Name:        "李白",
		NameEn:      "Li Bai",
		Era:         "古代",
		Nationality: "中国",
		StyleTags:   []string{"浪漫", "豪放", "飘逸"},
		Bio:         "唐代伟大的浪漫主义诗人，被后人誉为\"诗仙\"。",
		PlantType:   "梅花",
		PlantSymbol: "傲骨凌霜，独立不羁",
	},
	{
		Name:        "杜甫",
		NameEn:      "Du Fu",
		Era:         "古代",
		Nationality: "中国",
		StyleTags:   []string{"现实", "沉郁", "忧国"},
		Bio:         "唐代伟大的现实主义诗人，被后人誉为\"诗圣\"。",
		PlantType:   "松树",
		PlantSymbol: "坚韧不拔，心系苍生",
	},
	{
		Name:        "苏轼",
		NameEn:      "Su Shi",
		Era:         "古代",
		Nationality: "中国",
		StyleTags:   []string{"豪放", "旷达", "多才"},
		Bio:         "北宋文学家、书画家，号东坡居士，豪放派词人代表。",
		PlantType:   "竹子",
		PlantSymbol: "虚心有节，随遇而安",
	},
	{
		Name:        "李清照",
		NameEn:      "Li Qingzhao",
		Era:         "古代",
		Nationality: "中国",
		StyleTags:   []string{"婉约", "细腻", "深情"},
		Bio:         "宋代女词人，婉约词派代表，号易安居士。",
		PlantType:   "海棠",
		PlantSymbol: "温婉多情，才华横溢",
	},
	{
		Name:        "鲁迅",
		NameEn:      "Lu Xun",
		Era:         "近现代",
		Nationality: "中国",
		StyleTags:   []string{"犀利", "深刻", "批判"},
		Bio:         "中国现代文学的奠基人，思想家、革命家。",
		PlantType:   "野草",
		PlantSymbol: "坚韧顽强，直面现实",
	},
	{
		Name:        "林徽因",
		NameEn:      "Lin Huiyin",
		Era:         "近现代",
		Nationality: "中国",
		StyleTags:   []string{"优美", "细腻", "浪漫"},
		Bio:         "中国著名建筑师、诗人、作家，新月派诗人。",
		PlantType:   "白玉兰",
		PlantSymbol: "高洁优雅，才情兼备",
	},
	{
		Name:        "泰戈尔",
		NameEn:      "Rabindranath Tagore",
		Era:         "近现代",
		Nationality: "印度",
		StyleTags:   []string{"哲理", "抒情", "自然"},
		Bio:         "印度诗人、哲学家，诺贝尔文学奖获得者。",
		PlantType:   "菩提树",
		PlantSymbol: "智慧觉悟，博爱众生",
	},
	{
		Name:        "海子",
		NameEn:      "Hai Zi",
		Era:         "当代",
		Nationality: "中国",
		StyleTags:   []string{"纯粹", "理想", "浪漫"},
		Bio:         "当代诗人，原名查海生，被誉为\"麦地诗人\"。",
		PlantType:   "向日葵",
		PlantSymbol: "追逐光明，热爱生命",
	},
}

var workSeeds = []workSeed{
	{Title: "静夜思", AuthorName: "李白", Type: "诗", Era: "唐"},
	{Title: "将进酒", AuthorName: "李白", Type: "诗", Era: "唐"},
	{Title: "春望", AuthorName: "杜甫", Type: "诗", Era: "唐"},
	{Title: "登高", AuthorName: "杜甫", Type: "诗", Era: "唐"},
	{Title: "水调歌头", AuthorName: "苏轼", Type: "词", Era: "宋"},
	{Title: "定风波", AuthorName: "苏轼", Type: "词", Era: "宋"},
	{Title: "如梦令", AuthorName: "李清照", Type: "词", Era: "宋"},
	{Title: "声声慢", AuthorName: "李清照", Type: "词", Era: "宋"},
	{Title: "野草", AuthorName: "鲁迅", Type: "散文诗集", Era: "1927"},
	{Title: "你是人间的四月天", AuthorName: "林徽因", Type: "诗", Era: "1934"},
	{Title: "飞鸟集", AuthorName: "泰戈尔", Type: "诗集", Era: "1916"},
	{Title: "面朝大海，春暖花开", AuthorName: "海子", Type: "诗", Era: "1989"},
}

var passageSeeds = []passageSeed{
	{
		Content:     "床前明月光，疑是地上霜。举头望明月，低头思故乡。",
		AuthorName:  "李白",
		WorkTitle:   "静夜思",
		EmotionTags: []string{"思念", "孤独", "平静"},
		ImageryTags: []string{"月光", "霜", "夜晚"},
		SceneTags:   []string{"夜晚", "室内"},
		ThemeTags:   []string{"乡愁", "思念"},
	},
	{
		Content:     "君不见黄河之水天上来，奔流到海不复回。君不见高堂明镜悲白发，朝如青丝暮成雪。",
		AuthorName:  "李白",
		WorkTitle:   "将进酒",
		EmotionTags: []string{"豪迈", "感慨", "悲伤"},
		ImageryTags: []string{"黄河", "镜子", "白发"},
		SceneTags:   []string{"自然", "室内"},
		ThemeTags:   []string{"人生", "时光"},
	},
	{
		Content:     "人生得意须尽欢，莫使金樽空对月。天生我材必有用，千金散尽还复来。",
		AuthorName:  "李白",
		WorkTitle:   "将进酒",
		EmotionTags: []string{"豪迈", "自信", "洒脱"},
		ImageryTags: []string{"酒杯", "月亮"},
		SceneTags:   []string{"宴会"},
		ThemeTags:   []string{"人生", "自信"},
	},
	{
		Content:     "国破山河在，城春草木深。感时花溅泪，恨别鸟惊心。",
		AuthorName:  "杜甫",
		WorkTitle:   "春望",
		EmotionTags: []string{"悲伤", "忧国", "感慨"},
		ImageryTags: []string{"山河", "花", "鸟"},
		SceneTags:   []string{"春天", "城市"},
		ThemeTags:   []string{"战争", "离别"},
	},
	{
		Content:     "无边落木萧萧下，不尽长江滚滚来。万里悲秋常作客，百年多病独登台。",
		AuthorName:  "杜甫",
		WorkTitle:   "登高",
		EmotionTags: []string{"悲伤", "孤独", "感慨"},
		ImageryTags: []string{"落叶", "长江", "秋天"},
		SceneTags:   []string{"秋天", "高处"},
		ThemeTags:   []string{"人生", "漂泊"},
	},
	{
		Content:     "明月几时有？把酒问青天。不知天上宫阙，今夕是何年。",
		AuthorName:  "苏轼",
		WorkTitle:   "水调歌头",
		EmotionTags: []string{"思念", "豪迈", "哲思"},
		ImageryTags: []string{"月亮", "酒", "天空"},
		SceneTags:   []string{"夜晚", "中秋"},
		ThemeTags:   []string{"思念", "人生"},
	},
	{
		Content:     "人有悲欢离合，月有阴晴圆缺，此事古难全。但愿人长久，千里共婵娟。",
		AuthorName:  "苏轼",
		WorkTitle:   "水调歌头",
		EmotionTags: []string{"思念", "豁达", "祝福"},
		ImageryTags: []string{"月亮"},
		SceneTags:   []string{"夜晚"},
		ThemeTags:   []string{"思念", "人生哲理"},
	},
	{
		Content:     "莫听穿林打叶声，何妨吟啸且徐行。竹杖芒鞋轻胜马，谁怕？一蓑烟雨任平生。",
		AuthorName:  "苏轼",
		WorkTitle:   "定风波",
		EmotionTags: []string{"豁达", "洒脱", "平静"},
		ImageryTags: []string{"雨", "竹杖", "蓑衣"},
		SceneTags:   []string{"雨天", "山林"},
		ThemeTags:   []string{"人生态度", "豁达"},
	},
	{
		Content:     "常记溪亭日暮，沉醉不知归路。兴尽晚回舟，误入藕花深处。争渡，争渡，惊起一滩鸥鹭。",
		AuthorName:  "李清照",
		WorkTitle:   "如梦令",
		EmotionTags: []string{"欢乐", "自在", "惊喜"},
		ImageryTags: []string{"溪水", "荷花", "鸥鹭", "小舟"},
		SceneTags:   []string{"傍晚", "水边"},
		ThemeTags:   []string{"青春", "自然"},
	},
	{
		Content:     "寻寻觅觅，冷冷清清，凄凄惨惨戚戚。乍暖还寒时候，最难将息。",
		AuthorName:  "李清照",
		WorkTitle:   "声声慢",
		EmotionTags: []string{"悲伤", "孤独", "凄凉"},
		ImageryTags: []string{"寒冷"},
		SceneTags:   []string{"秋天", "室内"},
		ThemeTags:   []string{"孤独", "思念"},
	},
	{
		Content:     "当我沉默着的时候，我觉得充实；我将开口，同时感到空虚。",
		AuthorName:  "鲁迅",
		WorkTitle:   "野草",
		EmotionTags: []string{"沉思", "矛盾", "深刻"},
		ImageryTags: []string{},
		SceneTags:   []string{},
		ThemeTags:   []string{"人生", "思考"},
	},
	{
		Content:     "希望是本无所谓有，无所谓无的。这正如地上的路；其实地上本没有路，走的人多了，也便成了路。",
		AuthorName:  "鲁迅",
		WorkTitle:   "野草",
		EmotionTags: []string{"希望", "坚定", "哲思"},
		ImageryTags: []string{"路"},
		SceneTags:   []string{},
		ThemeTags:   []string{"希望", "人生"},
	},
	{
		Content:     "你是一树一树的花开，是燕在梁间呢喃，——你是爱，是暖，是希望，你是人间的四月天！",
		AuthorName:  "林徽因",
		WorkTitle:   "你是人间的四月天",
		EmotionTags: []string{"爱", "温暖", "希望", "喜悦"},
		ImageryTags: []string{"花", "燕子", "春天"},
		SceneTags:   []string{"春天"},
		ThemeTags:   []string{"爱情", "生命"},
	},
	{
		Content:     "世界以痛吻我，要我报之以歌。",
		AuthorName:  "泰戈尔",
		WorkTitle:   "飞鸟集",
		EmotionTags: []string{"坚强", "豁达", "感恩"},
		ImageryTags: []string{},
		SceneTags:   []string{},
		ThemeTags:   []string{"人生态度", "坚强"},
	},
	{
		Content:     "生如夏花之绚烂，死如秋叶之静美。",
		AuthorName:  "泰戈尔",
		WorkTitle:   "飞鸟集",
		EmotionTags: []string{"平静", "豁达", "哲思"},
		ImageryTags: []string{"夏花", "秋叶"},
		SceneTags:   []string{"夏天", "秋天"},
		ThemeTags:   []string{"生死", "人生"},
	},
	{
		Content:     "我们把世界看错，反说它欺骗了我们。",
		AuthorName:  "泰戈尔",
		WorkTitle:   "飞鸟集",
		EmotionTags: []string{"哲思", "反省", "深刻"},
		ImageryTags: []string{},
		SceneTags:   []string{},
		ThemeTags:   []string{"人生哲理", "认知"},
	},
	{
		Content:     "从明天起，做一个幸福的人。喂马、劈柴，周游世界。从明天起，关心粮食和蔬菜。我有一所房子，面朝大海，春暖花开。",
		AuthorName:  "海子",
		WorkTitle:   "面朝大海，春暖花开",
		EmotionTags: []string{"希望", "向往", "平静", "幸福"},
		ImageryTags: []string{"大海", "房子", "花"},
		SceneTags:   []string{"海边", "春天"},
		ThemeTags:   []string{"理想生活", "幸福"},
	},
	{
		Content:     "陌生人，我也为你祝福。愿你有一个灿烂的前程，愿你有情人终成眷属，愿你在尘世获得幸福。",
		AuthorName:  "海子",
		WorkTitle:   "面朝大海，春暖花开",
		EmotionTags: []string{"祝福", "温暖", "善良"},
		ImageryTags: []string{},
		SceneTags:   []string{},
		ThemeTags:   []string{"祝福", "善意"},
	},
}
