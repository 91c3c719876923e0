package seeders

// Стартовые справочники для пустой базы.

var departmentsData = []string{
	"Производственный цех",
	"Складской комплекс",
	"Административный корпус",
}

var teamsData = []struct {
	Name       string
	Department string
}{
	{Name: "Механики", Department: "Производственный цех"},
	{Name: "Электрики", Department: "Производственный цех"},
	{Name: "Сервис склада", Department: "Складской комплекс"},
}

var categoriesData = []string{
	"Станки",
	"Подъемное оборудование",
	"Климатическая техника",
	"Компьютерная техника",
}

var equipmentsData = []struct {
	Name       string
	Category   string
	Department string
	Team       string
}{
	{Name: "Токарный станок ТВ-320", Category: "Станки", Department: "Производственный цех", Team: "Механики"},
	{Name: "Фрезерный станок ФС-250М", Category: "Станки", Department: "Производственный цех", Team: "Механики"},
	{Name: "Кран-балка 3.2т", Category: "Подъемное оборудование", Department: "Складской комплекс", Team: "Сервис склада"},
	{Name: "Погрузчик Still RX20", Category: "Подъемное оборудование", Department: "Складской комплекс", Team: "Сервис склада"},
	{Name: "Кондиционер серверной", Category: "Климатическая техника", Department: "Административный корпус", Team: "Электрики"},
}

var usersData = []struct {
	Fio      string
	Login    string
	Password string
	Role     string
	// Команда, если пользователь - техник.
	Team string
}{
	{Fio: "Администратор Системы", Login: "admin", Password: "admin123", Role: "admin"},
	{Fio: "Орлов Дмитрий Сергеевич", Login: "d.orlov", Password: "manager123", Role: "manager"},
	{Fio: "Смирнов Алексей Петрович", Login: "a.smirnov", Password: "tech123", Role: "technician", Team: "Механики"},
	{Fio: "Кузнецов Иван Андреевич", Login: "i.kuznetsov", Password: "tech123", Role: "technician", Team: "Механики"},
	{Fio: "Волков Сергей Николаевич", Login: "s.volkov", Password: "tech123", Role: "technician", Team: "Электрики"},
	{Fio: "Петрова Анна Владимировна", Login: "a.petrova", Password: "user123", Role: "employee"},
}
