package lexicon

// #region set-names
const (
	SetRest               = "rest"
	SetHunger             = "hunger"
	SetSatiety            = "satiety"
	SetPlay               = "play"
	SetAffection          = "affection"
	SetAffectionRejection = "affection_rejection"
	SetIntimacy           = "intimacy"
	SetRefusal            = "refusal"
	SetPersonaMarker      = "persona_marker"
	SetProfessional       = "professional"
	SetGreetingMorning    = "greeting_morning"
	SetGreetingAfternoon  = "greeting_afternoon"
	SetGreetingEvening    = "greeting_evening"
	SetGreetingNight      = "greeting_night"
	SetFoodThanks         = "food_thanks"
)
// #endregion set-names

// #region default-sets
// Default returns the authored phrase sets for the cat persona.
// Phrases are stems: matching is substring over canonicalized text, so
// "졸려" also hits "졸려서" and "피곤" hits "피곤해냥".
func Default() Sets {
	return Sets{
		SetRest: {
			"졸려", "졸리", "졸음", "피곤", "누울", "누워", "눕고", "자고싶", "잘래",
			"잠이", "잠와", "쉬고싶", "쉴래", "하품", "나른", "낮잠", "지쳤", "지쳐",
			"꾸벅", "쿨쿨", "새근", "zzz",
		},
		SetHunger: {
			"배고", "배가고", "밥", "먹고싶", "먹을래", "먹자", "간식", "츄르", "냠냠",
			"꼬르륵", "사료", "참치", "생선", "통조림",
		},
		SetSatiety: {
			"배불러", "배부르", "안먹을래", "안먹어", "배안고파", "그만먹", "입맛없",
		},
		SetPlay: {
			"놀자", "놀아", "놀고싶", "우다다", "뛰자", "뛰어", "뛰놀", "사냥", "장난감",
			"공놀이", "레이저", "신나", "신난", "달리자", "점프", "깃털", "낚싯대",
		},
		SetAffection: {
			"옆에", "곁에", "안아", "쓰다듬", "보고싶", "좋아", "그르릉", "골골", "부비",
			"같이있", "꾹꾹", "함께", "만져줘", "기대",
		},
		SetAffectionRejection: {
			"저리가", "싫어", "귀찮", "혼자있고싶", "만지지마", "건드리지마", "비켜",
			"쓰다듬지마", "안아주지마", "안지마", "부비지마",
		},
		SetIntimacy: {
			"사랑해", "사랑한", "평생", "영원히", "너밖에없", "너만있으면", "결혼", "내꺼",
			"운명", "너없이는", "죽을때까지",
		},
		SetRefusal: {
			"하지마", "건드리지마", "만지지마", "그만", "싫어", "저리가", "귀찮", "피곤",
			"힘들어", "쉬고싶", "내버려", "놔줘", "아파", "쓰다듬지마", "안아주지마", "안지마",
		},
		SetPersonaMarker: {
			"냥", "냐옹", "야옹", "냐아", "먀",
		},
		SetProfessional: {
			"상담해드릴", "도와드릴", "도와드리겠", "드리겠습니다", "해드릴게요", "고객님",
			"말씀해주세요", "말씀해주시면", "도움이필요하시", "무엇을도와", "필요하시면",
			"언제든지연락", "힘들었겠네요", "이해합니다", "공감합니다", "상담사",
			"안내해드리", "how can i help", "as an ai",
		},
		SetGreetingMorning:   {"좋은아침", "굿모닝", "일어났", "잘잤"},
		SetGreetingAfternoon: {"점심", "좋은오후"},
		SetGreetingEvening:   {"좋은저녁", "저녁먹", "저녁이"},
		SetGreetingNight:     {"잘자", "굿나잇", "좋은꿈", "잘시간"},
		SetFoodThanks:        {"맛있", "잘먹", "냠냠", "고마워", "최고야"},
	}
}
// #endregion default-sets
