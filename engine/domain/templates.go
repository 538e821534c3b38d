package domain

// builtinTemplates holds the full domain catalog. Order matters: it defines
// the enumeration order used in listings and error messages.
var builtinTemplates = []Template{
	{
		Key:         "backend",
		Label:       "Backend",
		TitlePrefix: "Backend",
		AnalysisSteps: []Step{
			{
				Title:  "API / Endpoint İnceleme",
				Detail: "İlgili endpoint'in request/response logları ve HTTP durum kodları incelenir.",
			},
			{
				Title:  "Veritabanı Sorgusu",
				Detail: "Yavaş veya hatalı sorgular EXPLAIN/ANALYZE ile analiz edilir; index kullanımı kontrol edilir.",
			},
			{
				Title:  "Kuyruk & Async İşlem",
				Detail: "Message queue (SQS, RabbitMQ vb.) backlog, dead-letter kayıtları ve consumer hataları gözden geçirilir.",
			},
			{
				Title:  "Servis Bağımlılıkları",
				Detail: "Downstream servislerin sağlık durumu (health-check) ve timeout değerleri doğrulanır.",
			},
			{
				Title:  "Bulgu Paylaşımı",
				Detail: "Kök neden ve önerilen düzeltme teknik dille raporlanır.",
			},
		},
		AcceptanceCriteria: []string{
			"Hatalı endpoint veya servis tespit edilmiş ve logları alınmıştır.",
			"Veritabanı tarafında anomali olup olmadığı netleştirilmiştir.",
			"Sorunun kaynağı (kod hatası, config, altyapı) belirlenmiştir.",
			"Düzeltme önerisi veya geçici workaround talep sahibine iletilmiştir.",
		},
	},
	{
		Key:         "frontend",
		Label:       "Frontend",
		TitlePrefix: "Frontend",
		AnalysisSteps: []Step{
			{
				Title:  "Tarayıcı & Ortam Tespiti",
				Detail: "Sorunun hangi tarayıcı/versiyon ve işletim sisteminde oluştuğu belirlenir.",
			},
			{
				Title:  "Console & Network İnceleme",
				Detail: "DevTools console hataları ve başarısız network istekleri (4xx/5xx) analiz edilir.",
			},
			{
				Title:  "State & Render Kontrolü",
				Detail: "Bileşen state'i, props akışı ve gereksiz re-render'lar React/Vue DevTools ile incelenir.",
			},
			{
				Title:  "Performans Profili",
				Detail: "Lighthouse veya DevTools Performance sekmesiyle LCP, CLS, FID metrikleri ölçülür.",
			},
			{
				Title:  "Bulgu Paylaşımı",
				Detail: "Reproducing adımları ve ekran görüntüleriyle birlikte rapor hazırlanır.",
			},
		},
		AcceptanceCriteria: []string{
			"Sorun belirli tarayıcı/cihaz kombinasyonunda tekrarlanabilir hale getirilmiştir.",
			"Console hatası veya network isteği kök nedeni tespit edilmiştir.",
			"Düzeltme PR'ı açılmış ya da geçici CSS/JS fix uygulanmıştır.",
			"Analiz raporu ve ekran görüntüleri talep sahibine iletilmiştir.",
		},
	},
	{
		Key:         "devops",
		Label:       "DevOps / Altyapı",
		TitlePrefix: "DevOps",
		AnalysisSteps: []Step{
			{
				Title:  "Pipeline & Build İnceleme",
				Detail: "CI/CD pipeline logları (GitHub Actions, GitLab CI vb.) adım adım incelenir; hatalı stage belirlenir.",
			},
			{
				Title:  "Container & Orchestration",
				Detail: "Docker container logları, exit code'lar ve restart politikası kontrol edilir.",
			},
			{
				Title:  "Altyapı Kaynakları",
				Detail: "CPU, bellek, disk ve ağ metrikleri (CloudWatch, Grafana vb.) anomali açısından incelenir.",
			},
			{
				Title:  "Güvenlik & Erişim",
				Detail: "IAM izinleri, Security Group kuralları ve secret/env değişkenleri doğrulanır.",
			},
			{
				Title:  "Bulgu Paylaşımı",
				Detail: "RCA (Root Cause Analysis) ve iyileştirme önerisi runbook formatında paylaşılır.",
			},
		},
		AcceptanceCriteria: []string{
			"Pipeline veya deployment hatası tam log çıktısıyla belgelenmiştir.",
			"Altyapı kaynak tüketimi anomalisi tespit edilmiş veya dışlanmıştır.",
			"Güvenlik açığı veya yanlış config varsa düzeltilmiş ya da bilet açılmıştır.",
			"Servis başarıyla yeniden deploy edilmiş ve sağlık kontrolü geçmiştir.",
		},
	},
	{
		Key:         "mobile",
		Label:       "Mobil",
		TitlePrefix: "Mobil",
		AnalysisSteps: []Step{
			{
				Title:  "Crash & Hata Raporu",
				Detail: "Firebase Crashlytics / Sentry üzerinden stack trace ve etkilenen cihaz/OS versiyonları incelenir.",
			},
			{
				Title:  "Build & Sürüm Kontrolü",
				Detail: "Uygulama versiyonu, build numarası ve bağımlılık versiyonları doğrulanır.",
			},
			{
				Title:  "API & Bağlantı Testi",
				Detail: "Mobil taraftan gelen API isteklerinin başarı oranı ve timeout değerleri kontrol edilir.",
			},
			{
				Title:  "Store Kural Uyumu",
				Detail: "App Store / Google Play politika değişiklikleri ve inceleme geri bildirimleri gözden geçirilir.",
			},
			{
				Title:  "Bulgu Paylaşımı",
				Detail: "Etkilenen cihaz/OS matrisi ve düzeltme planı talep sahibine iletilir.",
			},
		},
		AcceptanceCriteria: []string{
			"Crash stack trace'i alınmış ve kök neden belirlenmiştir.",
			"Sorunun belirli OS versiyonu veya cihazla sınırlı olup olmadığı netleştirilmiştir.",
			"Düzeltme içeren yeni build hazırlanmış veya hotfix planı oluşturulmuştur.",
			"Analiz sonucu talep sahibine ve varsa store ekibine iletilmiştir.",
		},
	},
	{
		Key:         "data",
		Label:       "Veri / Analytics",
		TitlePrefix: "Data",
		AnalysisSteps: []Step{
			{
				Title:  "Pipeline Sağlığı",
				Detail: "ETL/ELT pipeline'ının durum logları (Airflow, dbt vb.) incelenir; başarısız tasklar ve gecikmeler tespit edilir.",
			},
			{
				Title:  "Veri Kalitesi Kontrolü",
				Detail: "Kaynak ve hedef veri setleri arasında null oranları, veri tipleri ve aykırı değerler (outlier) analiz edilir.",
			},
			{
				Title:  "Storage & Bağlantı",
				Detail: "Veritabanı/Data Warehouse bağlantıları, sorgu performansı ve depolama kapasitesi kontrol edilir.",
			},
			{
				Title:  "Raporlama & Metrikleri",
				Detail: "BI araçları (Tableau, Power BI vb.) raporlarının güncel olup olmadığı ve hesaplamaları doğrulanır.",
			},
			{
				Title:  "Bulgu Paylaşımı",
				Detail: "Veri anomalisi ve düzeltme planı veri ekibine ve ilgili paydaşlara iletilir.",
			},
		},
		AcceptanceCriteria: []string{
			"Pipeline hatası tam ayrıntılı loglarla belgelenmiştir.",
			"Veri kalitesi sorusu (eksik, yanlış, geç veri) tespit edilmiş veya dışlanmıştır.",
			"Etkilenen raporlar ve metrikler belirlenmiştir.",
			"Düzeltme veya geçici workaround uygulanmış sosyal medya kullanıcılarına bildirilmiştir.",
		},
	},
	{
		Key:         "business",
		Label:       "İşletme / Proses",
		TitlePrefix: "Business",
		AnalysisSteps: []Step{
			{
				Title:  "Gereksinim Analizi",
				Detail: "İstenilen görev, hedef ve başarı ölçütleri paydaşlarla netleştirilir.",
			},
			{
				Title:  "Mevcut Durum Değerlendirmesi",
				Detail: "Mevcut belgeler, süreçler ve altyapı incelenir; boşluklar ve iyileştirme fırsatları tespit edilir.",
			},
			{
				Title:  "Çözüm Tasarımı",
				Detail: "Önerilen yeni belgeler, iş akışları veya araçlar tasarlanır; maliyet-fayda analizi yapılır.",
			},
			{
				Title:  "Uygulama Planı",
				Detail: "Adım adım uygulama takvimi, sorumlu taraflar ve kontrol noktaları tanımlanır.",
			},
			{
				Title:  "Bulgu Paylaşımı",
				Detail: "Özetlenmiş rapor ve uygulanabilir öneriler yöneticilere ve ilgili ekiplere sunulur.",
			},
		},
		AcceptanceCriteria: []string{
			"Görev gereksinimleri ve başarı kriterleri yazılı olarak onaylanmıştır.",
			"Mevcut durum analizi tamamlanmış ve iyileştirme alanları belirlenmiştir.",
			"Çözüm önerisi ve uygulama planı hazırlanmıştır.",
			"Plan paydaşlarca gözden geçirilmiş ve kabul edilmiştir.",
		},
	},
	{
		Key:         GeneralKey,
		Label:       "Genel",
		TitlePrefix: "",
		AnalysisSteps: []Step{
			{
				Title:  "Sorgulama",
				Detail: "İletilen bilgiler kullanılarak mevcut durum ve bağlam netleştirilir.",
			},
			{
				Title:  "Log Analizi",
				Detail: "İlgili sistem loglarından hata ve anomaliler incelenir.",
			},
			{
				Title:  "Bağımlılık Kontrolü",
				Detail: "Üçüncü taraf servisler ve entegrasyonlar sağlık durumu açısından değerlendirilir.",
			},
			{
				Title:  "Bulgu Paylaşımı",
				Detail: "Tespit edilen anomali veya çözüm önerisi teknik dille raporlanır.",
			},
		},
		AcceptanceCriteria: []string{
			"Sorunun kapsamı ve etki alanı belirlenmiştir.",
			"Kök neden (kullanıcı hatası mı, yazılım bug'ı mı, altyapı mı) netleştirilmiştir.",
			"Analiz sonucu ve çözüm önerisi talep sahibine iletilmiştir.",
		},
	},
}
