package bot

const startText = `🎬 Welcome to Gojo Casting! / እንኳን ወደ ጎጆ ካስቲንግ በደህና መጡ!

We connect Ethiopian film talent with productions and training.

/register — register as talent / እንደ ተሰጥኦ ይመዝገቡ
/training — enroll in a training course / ለስልጠና ይመዝገቡ
/job — apply for a job / ለስራ ያመልክቱ
/help — all commands / ሁሉም ትዕዛዞች`

const helpText = `Commands:

/register — register as talent
/register_payment — resubmit your registration payment proof
/training — enroll in a training course
/training_payment — resubmit your training payment proof
/job — apply for a job
/cancel — abandon what you are filling in
/about — about Gojo Casting
/getmyid — show your Telegram ID

Answer the questions one by one. You can stop any time with /cancel and start over.`

const aboutText = `🎬 Gojo Casting

A casting and training platform for the Ethiopian film industry. We register talents across 28 categories, run acting, directing, cinematography and writing courses, and match registered talents with productions.

Questions? Reach us at the accounts listed during payment, or just keep chatting here.`

const adminText = `Reviewer commands:

/list_pending_payments — registration payments awaiting review
/approve_payment <id>
/reject_payment <id>
/list_pending_training_payments — training payments awaiting review
/approve_training_payment <id>
/reject_training_payment <id>
/admin_registrations — all registrations
/admin_trainings — all enrollments
/admin_jobs — all job applications
/admin_user <telegram id> — everything about one user`

const idleText = `I did not catch that. Use /register, /training or /job to begin, or /help to see everything I can do.`
