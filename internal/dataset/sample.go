package dataset

// Compiled-in Deckhouse Kubernetes Platform edition data.

func sampleFeatures() []Feature {
	return []Feature{
		{ID: "registry", Name: "Наличие в Реестре российского ПО", Description: "Продукт включен в Реестр отечественного программного обеспечения", Category: CategoryGeneral, Importance: 9},
		{ID: "russian_os", Name: "Поддержка российских ОС", Description: "Возможность установки на российские операционные системы", Category: CategoryGeneral, Importance: 8},
		{ID: "closed_env", Name: "Развертывание в закрытом контуре", Description: "Возможность установки в изолированном окружении без доступа к внешним сетям", Category: CategoryGeneral, Importance: 9},
		{ID: "admin_ui", Name: "Интерфейс администратора", Description: "Наличие графического интерфейса для управления кластером", Category: CategoryGeneral, Importance: 7},
		{ID: "centralized_mgmt", Name: "Централизованное управление парком кластеров", Description: "Возможность управлять несколькими кластерами из единого интерфейса", Category: CategoryGeneral, Importance: 6},
		{ID: "fstek_cert", Name: "Сертификация ФСТЭК", Description: "Наличие сертификата ФСТЭК", Category: CategorySecurity, Importance: 10},
		{ID: "warranty_support", Name: "Гарантийная техническая поддержка", Description: "Базовая техническая поддержка, включенная в стоимость продукта", Category: CategoryGeneral, Importance: 7},
		{ID: "physical_servers", Name: "Установка на физические серверы", Description: "Возможность установки непосредственно на физические серверы", Category: CategoryGeneral, Importance: 6},
		{ID: "vm_install", Name: "Установка на виртуальные машины", Description: "Возможность установки на предсозданные виртуальные машины в любой системе виртуализации", Category: CategoryGeneral, Importance: 6},
		{ID: "security_policies", Name: "Политики безопасности", Description: "Поддержка микросегментации и политик сетевой безопасности", Category: CategorySecurity, Importance: 8},
		{ID: "image_sign_verify", Name: "Проверка подписи образов контейнеров", Description: "Возможность верификации подписей образов контейнеров", Category: CategorySecurity, Importance: 7},
		{ID: "deny_vulnerable", Name: "Запрет на запуск контейнеров с уязвимостями", Description: "Возможность запретить запуск контейнеров с известными уязвимостями", Category: CategorySecurity, Importance: 8},
		{ID: "threat_detection", Name: "Поиск угроз безопасности", Description: "Встроенные механизмы для обнаружения потенциальных угроз безопасности", Category: CategorySecurity, Importance: 8},
		{ID: "image_scanning", Name: "Сканирование образов в runtime", Description: "Проверка образов контейнеров на уязвимости во время выполнения", Category: CategorySecurity, Importance: 7},
		{ID: "storage_local", Name: "Встроенное локальное хранилище", Description: "Встроенное локальное программно-определяемое хранилище", Category: CategoryStorage, Importance: 6},
		{ID: "service_mesh", Name: "Service Mesh возможности", Description: "Поддержка Service Mesh для управления коммуникацией между сервисами", Category: CategoryNetwork, Importance: 6},
		{ID: "vm_support", Name: "Запуск виртуальных машин", Description: "Возможность запуска виртуальных машин рядом с контейнерами", Category: CategoryVirtualization, Importance: 7},
		{ID: "monitoring", Name: "Расширенный мониторинг", Description: "Расширенные возможности мониторинга с готовыми метриками и оповещениями", Category: CategoryObservability, Importance: 7},
	}
}

// matrix builds a status map from feature ids listed in sampleFeatures order.
func matrix(statuses ...Status) map[string]Status {
	ids := []string{
		"registry", "russian_os", "closed_env", "admin_ui", "centralized_mgmt",
		"fstek_cert", "warranty_support", "physical_servers", "vm_install",
		"security_policies", "image_sign_verify", "deny_vulnerable",
		"threat_detection", "image_scanning", "storage_local", "service_mesh",
		"vm_support", "monitoring",
	}
	m := make(map[string]Status, len(ids))
	for i, s := range statuses {
		m[ids[i]] = s
	}
	return m
}

func sampleEditions() []Edition {
	const (
		P = StatusPresent
		A = StatusAbsent
		L = StatusPlanned
		C = StatusConditional
	)
	return []Edition{
		{
			ID:          "community",
			Name:        "Community Edition",
			Description: "Бесплатная базовая редакция для ознакомления или небольших проектов",
			Features:    matrix(A, A, A, A, C, A, A, P, P, P, A, A, A, A, P, P, P, P),
		},
		{
			ID:          "basic",
			Name:        "Basic Edition",
			Description: "Коммерческая редакция для простых сценариев использования в российских компаниях",
			Features:    matrix(P, P, A, A, C, A, P, P, P, P, A, A, A, A, A, P, A, P),
		},
		{
			ID:          "standard",
			Name:        "Standard Edition",
			Description: "Классическая коммерческая редакция с базовыми возможностями для большинства задач",
			Features:    matrix(P, P, P, P, C, A, P, P, P, P, A, A, A, A, P, P, A, P),
		},
		{
			ID:          "standard_plus",
			Name:        "Standard Edition+",
			Description: "Расширенная коммерческая редакция с дополнительными возможностями",
			Features:    matrix(P, P, P, P, P, A, P, P, P, P, L, A, A, A, P, P, P, P),
		},
		{
			ID:          "enterprise",
			Name:        "Enterprise Edition",
			Description: "Полнофункциональная редакция для крупных проектов и предприятий",
			Features:    matrix(P, P, P, P, P, A, P, P, P, P, P, P, P, P, P, P, P, P),
		},
		{
			ID:          "cert_security_lite",
			Name:        "Certified Security Edition Lite",
			Description: "Редакция с сертификацией ФСТЭК с облегченным набором функций",
			Features:    matrix(P, P, P, A, L, P, P, P, P, P, L, P, P, P, A, A, A, A),
		},
		{
			ID:          "cert_security_pro",
			Name:        "Certified Security Edition Pro",
			Description: "Полная редакция с сертификацией ФСТЭК и расширенными функциями",
			Features:    matrix(P, P, P, L, L, P, P, P, P, P, L, P, P, P, L, A, L, L),
		},
	}
}

func sampleNodes() []*Node {
	return []*Node{
		NewQuestion(RootID, "Требуется ли сертификация ФСТЭК?", "fstek_cert", "fstek_cert_node", "registry_node"),
		NewQuestion("fstek_cert_node", "Нужны ли продвинутые функции (интерфейс администратора, виртуализация)?", "", "cert_security_pro_result", "cert_security_lite_result"),
		NewQuestion("registry_node", "Требуется ли наличие в реестре российского ПО?", "registry", "closed_env_node", "community_result"),
		NewQuestion("closed_env_node", "Нужно ли развертывание в закрытом контуре?", "closed_env", "admin_ui_node", "basic_result"),
		NewQuestion("admin_ui_node", "Нужен ли интерфейс администратора?", "admin_ui", "central_mgmt_node", "basic_result"),
		NewQuestion("central_mgmt_node", "Требуется ли централизованное управление несколькими кластерами?", "centralized_mgmt", "security_node", "standard_result"),
		NewQuestion("security_node", "Нужны ли расширенные функции безопасности (проверка уязвимостей, подписи образов)?", "", "enterprise_result", "vm_node"),
		NewQuestion("vm_node", "Нужно ли запускать виртуальные машины рядом с контейнерами?", "vm_support", "standard_plus_result", "standard_result"),

		NewTerminal("community_result", "Рекомендуемая редакция: Community Edition", "community"),
		NewTerminal("basic_result", "Рекомендуемая редакция: Basic Edition", "basic"),
		NewTerminal("standard_result", "Рекомендуемая редакция: Standard Edition", "standard"),
		NewTerminal("standard_plus_result", "Рекомендуемая редакция: Standard Edition+", "standard_plus"),
		NewTerminal("enterprise_result", "Рекомендуемая редакция: Enterprise Edition", "enterprise"),
		NewTerminal("cert_security_lite_result", "Рекомендуемая редакция: Certified Security Edition Lite", "cert_security_lite"),
		NewTerminal("cert_security_pro_result", "Рекомендуемая редакция: Certified Security Edition Pro", "cert_security_pro"),
	}
}
