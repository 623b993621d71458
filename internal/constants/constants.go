package constants

// Роли пользователей в системе.
// Пользователь может совмещать роли (is_customer + is_executor), активная
// роль всегда передается в движок явно.
const (
	ROLE_CUSTOMER = "customer"
	ROLE_EXECUTOR = "executor"
	ROLE_ADMIN    = "admin"
)

// Статусы заказа. Терминальный статус — STATUS_CLOSED, из него переходов нет.
const (
	STATUS_OPEN                = "open"
	STATUS_CLOSING_BY_CUSTOMER = "closing_by_customer"
	STATUS_CLOSING_BY_EXECUTOR = "closing_by_executor"
	STATUS_CLOSED              = "closed"
)

// Решения сторон по паре (заказ, исполнитель).
// Отсутствие решения хранится как NULL.
const (
	DECISION_LIKED    = "liked"
	DECISION_DECLINED = "declined"
)

// Уровни опыта исполнителя.
const (
	EXPERIENCE_NONE    = "Нет опыта"
	EXPERIENCE_UP_TO_3 = "До 3 лет"
	EXPERIENCE_3_TO_10 = "От 3 до 10 лет"
	EXPERIENCE_MORE_10 = "Более 10 лет"
)

// ExperienceTiers — допустимые значения уровня опыта в порядке возрастания.
var ExperienceTiers = []string{
	EXPERIENCE_NONE,
	EXPERIENCE_UP_TO_3,
	EXPERIENCE_3_TO_10,
	EXPERIENCE_MORE_10,
}

// Виды строительства. Капитальному строительству соответствуют разделы
// sections_capital, линейным объектам — sections_linear.
const (
	CONSTRUCTION_CAPITAL = "капитальное строительство"
	CONSTRUCTION_LINEAR  = "линейные объекты"
)

var ConstructionTypes = []string{CONSTRUCTION_CAPITAL, CONSTRUCTION_LINEAR}

// Виды документации.
var DocTypes = []string{
	"ПД (проектная документация)",
	"РД (рабочая документация)",
	"ИД (исполнительная документация)",
}

// Разделы проектирования для капитального строительства.
var SectionsCapital = []string{
	"ПЗ (пояснительная записка)",
	"СПОЗУ (схема планировочной организации земельного участка)",
	"АР (архитектурные решения)",
	"КР (конструктивные решения)",
	"ЭС (электроснабжение)",
	"ВС (водоснабжение)",
	"ВО (водоотведение)",
	"ОВ (отопление и вентиляция)",
	"СС (сети связи)",
	"ГС (газоснабжение)",
	"ТХ (технологические решения)",
	"ПОС (проект организации строительства)",
	"ООС (охрана окружающей среды)",
	"ПБ (пожарная безопасность)",
	"ОДИ (доступ инвалидов)",
	"ЭЭ (энергетическая эффективность)",
	"СМ (смета)",
}

// Разделы проектирования для линейных объектов.
var SectionsLinear = []string{
	"ПЗ (пояснительная записка)",
	"ППО (проект полосы отвода)",
	"ТКР (технологические и конструктивные решения)",
	"ИЛО (здания и сооружения, входящие в инфраструктуру)",
	"ПОС (проект организации строительства)",
	"ООС (охрана окружающей среды)",
	"ПБ (пожарная безопасность)",
	"СМ (смета)",
}

// Состояния диалоговой FSM (хранятся в session.Manager, в ядро не попадают).
const (
	STATE_IDLE = "idle"

	// Авторизация и выбор роли
	STATE_AUTH_ADMIN_CODE = "auth_admin_code"
	STATE_AUTH_ROLE       = "auth_choose_role"

	// Регистрация заказчика
	STATE_CUST_REG_FIRST_NAME = "cust_reg_first_name"
	STATE_CUST_REG_LAST_NAME  = "cust_reg_last_name"
	STATE_CUST_REG_ORG        = "cust_reg_org"

	// Регистрация исполнителя
	STATE_EXEC_REG_FIRST_NAME = "exec_reg_first_name"
	STATE_EXEC_REG_LAST_NAME  = "exec_reg_last_name"
	STATE_EXEC_REG_ORG        = "exec_reg_org"
	STATE_EXEC_REG_EXPERIENCE = "exec_reg_experience"
	STATE_EXEC_REG_RESUME     = "exec_reg_resume"
	STATE_EXEC_REG_DOC_TYPES  = "exec_reg_doc_types"
	STATE_EXEC_REG_CONSTR     = "exec_reg_construction_types"
	STATE_EXEC_REG_SECT_CAP   = "exec_reg_sections_capital"
	STATE_EXEC_REG_SECT_LIN   = "exec_reg_sections_linear"

	// Создание/редактирование заказа
	STATE_ORDER_NAME        = "order_name"
	STATE_ORDER_DOC_TYPES   = "order_doc_types"
	STATE_ORDER_CONSTR      = "order_construction_types"
	STATE_ORDER_SECT_CAP    = "order_sections_capital"
	STATE_ORDER_SECT_LIN    = "order_sections_linear"
	STATE_ORDER_DESCRIPTION = "order_description"
	STATE_ORDER_DEADLINE    = "order_deadline"
	STATE_ORDER_PRICE       = "order_price"
	STATE_ORDER_EXPERTISE   = "order_expertise"
	STATE_ORDER_FILES       = "order_files_link"
	STATE_ORDER_CONFIRM     = "order_confirm"

	// Оценка и помощь
	STATE_RATING_REVIEW = "rating_review"
	STATE_HELP_TEXT     = "help_text"
)

// Префиксы callback-данных inline-клавиатур.
const (
	CB_ROLE_CUSTOMER = "role_customer"
	CB_ROLE_EXECUTOR = "role_executor"

	CB_CUST_BACK_MAIN     = "cust_back_main"
	CB_CUST_ORDER         = "cust_order:"
	CB_CUST_ORDER_NEW     = "cust_order_new"
	CB_CUST_ORDER_EDIT    = "cust_order_edit:"
	CB_CUST_RESPONSES     = "cust_responses:"
	CB_CUST_RESPONSES_NEW = "cust_responses_new:"
	CB_CUST_RESP_LIKED    = "cust_responses_liked:"
	CB_CUST_RESP_DECLINED = "cust_responses_declined:"
	CB_CUST_CANDIDATE_YES = "cust_candidate_yes:"
	CB_CUST_CANDIDATE_NO  = "cust_candidate_no:"
	CB_CUST_CONFIRM_EXEC  = "cust_confirm_exec:"
	CB_CUST_CHANGE_DECIDE = "cust_change_decision:"
	CB_CUST_ORDER_CLOSE   = "cust_order_close:"
	CB_CUST_CLOSE_YES     = "cust_close_yes:"
	CB_CUST_CLOSE_CONFIRM = "cust_close_confirm:"
	CB_BECOME_EXECUTOR    = "become_executor"

	CB_EXEC_BACK_MAIN     = "exec_back_main"
	CB_EXEC_ORDER         = "exec_order:"
	CB_EXEC_CHOSEN_LIST   = "exec_chosen_list"
	CB_EXEC_CHOSEN_ORDER  = "exec_chosen_order:"
	CB_EXEC_CHOSEN_YES    = "exec_chosen_yes:"
	CB_EXEC_CHOSEN_NO     = "exec_chosen_no:"
	CB_EXEC_MATCH_LIST    = "exec_match_list"
	CB_EXEC_MATCH_YES     = "exec_match_yes:"
	CB_EXEC_MATCH_NO      = "exec_match_no:"
	CB_EXEC_ORDER_CLOSE   = "exec_order_close:"
	CB_EXEC_CLOSE_YES     = "exec_close_yes:"
	CB_EXEC_CLOSE_CONFIRM = "exec_close_confirm:"
	CB_EXEC_EDIT_PROFILE  = "edit_executor"
	CB_BECOME_CUSTOMER    = "become_customer"

	// Мультивыбор в анкетах и заказах: pick:<индекс> переключает пункт
	// текущего шага, pick_done завершает шаг.
	CB_PICK      = "pick:"
	CB_PICK_DONE = "pick_done"
	CB_EXP       = "exp:"
	CB_SKIP      = "skip"
	CB_YES       = "yes"
	CB_NO        = "no"

	CB_ORDER_SAVE   = "order_save"
	CB_ORDER_CANCEL = "order_cancel"

	CB_RATE     = "rate:"
	CB_HELP_NEW = "help_new"
	CB_NOOP     = "noop"
)
